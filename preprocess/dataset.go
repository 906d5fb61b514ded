// SPDX-License-Identifier: MIT
// Package preprocess declares Dataset, RecordError and fingerprints.

package preprocess

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math"

	"github.com/katalvlaran/cellsweep/cellcomplex"
	"github.com/katalvlaran/cellsweep/dataset"
)

// ArtifactStore persists opaque named blobs. store.Store implements it.
type ArtifactStore interface {
	SaveArtifact(ctx context.Context, name string, data []byte) error
	LoadArtifact(ctx context.Context, name string) ([]byte, error)
}

// RecordError describes one failed record.
type RecordError struct {
	ID    string
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %q (#%d): %v", e.ID, e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Dataset is the read-only output of a pass. Slots of failed records hold a
// nil complex; Usable filters them out of index lists.
type Dataset struct {
	Name        string                 `json:"name"`
	Fingerprint string                 `json:"fingerprint"`
	Complexes   []*cellcomplex.Complex `json:"complexes"`
	IDs         []string               `json:"ids"`
	Targets     []float64              `json:"targets"`
	Failures    []RecordError          `json:"-"`
}

// Len returns the number of record slots.
func (d *Dataset) Len() int { return len(d.Complexes) }

// Usable returns the members of idx whose complex was built, in order.
func (d *Dataset) Usable(idx []int) []int {
	out := make([]int, 0, len(idx))
	for _, i := range idx {
		if i >= 0 && i < len(d.Complexes) && d.Complexes[i] != nil {
			out = append(out, i)
		}
	}

	return out
}

// Fingerprint identifies a pass over records under o. It covers every
// record's id, target, edge endpoints and vertex and edge features, so two
// passes with equal fingerprints produce equal datasets.
func Fingerprint(name string, records []dataset.Record, o Options) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%+v|%d\n", name, len(records), o.Complex, o.Dedupe)
	for _, r := range records {
		fmt.Fprintf(h, "%s|%x\n", r.ID, math.Float64bits(r.Target))
		if r.Graph == nil {
			h.Write([]byte("nil\n"))
			continue
		}
		for _, v := range r.Graph.Vertices() {
			fmt.Fprintf(h, "v%d", v.Index)
			writeFloats(h, v.Features)
		}
		for _, e := range r.Graph.Edges() {
			fmt.Fprintf(h, "e%d:%d-%d", e.Index, e.From, e.To)
			writeFloats(h, e.Features)
		}
	}

	return hex.EncodeToString(h.Sum(nil))[:32]
}

func writeFloats(w io.Writer, xs []float64) {
	var buf [8]byte
	fmt.Fprintf(w, "[%d]", len(xs))
	for _, x := range xs {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(x))
		w.Write(buf[:])
	}
}

func artifactName(fp string) string {
	return "preprocess/" + fp
}
