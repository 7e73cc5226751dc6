package model

import "github.com/secmon-lab/sirse/pkg/domain/types"

// Cluster is a group of nearby reports drawn as one heat map circle.
// Clusters are rebuilt from scratch on every recompute.
type Cluster struct {
	Center    Coordinates      `json:"center"`
	Count     int              `json:"count"`
	Intensity float64          `json:"intensity"`
	Radius    float64          `json:"radius"`
	Color     string           `json:"color"`
	ReportIDs []types.ReportID `json:"reportIds"`
}
