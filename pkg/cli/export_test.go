package cli

// NewApp exposes the command tree with a custom output writer for testing
var NewApp = newApp
