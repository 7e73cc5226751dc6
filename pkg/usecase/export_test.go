package usecase

import "github.com/secmon-lab/sirse/pkg/domain/model"

// ApplyRegionInOrder submits regions as if each had been issued in turn and
// then applies them in the given order
func (h *Heatmap) ApplyRegionInOrder(regions []model.GeographicBounds, order []int) {
	seqs := make([]uint64, len(regions))
	for i := range regions {
		seqs[i] = h.nextRegionSeq()
	}
	for _, i := range order {
		h.applyRegion(regions[i], seqs[i])
	}
}
