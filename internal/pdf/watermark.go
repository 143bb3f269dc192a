package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// paidStampDesc draws a large diagonal light-gray PAID across the page,
// on top of the content at 30% opacity.
const paidStampDesc = "font:Helvetica, points:110, col:.6 .6 .6, rot:45, sc:1 abs, op:.3"

// StampPaid overlays the PAID watermark on every page of doc and
// returns the stamped PDF.
func StampPaid(doc []byte) ([]byte, error) {
	wm, err := api.TextWatermark("PAID", paidStampDesc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("build paid stamp: %w", err)
	}
	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(doc), &out, nil, wm, nil); err != nil {
		return nil, fmt.Errorf("apply paid stamp: %w", err)
	}
	return out.Bytes(), nil
}
