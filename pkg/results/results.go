// Package results stores floorplan evaluation results.
//
// A [Result] captures everything a caller needs from one evaluation: the
// expression, the minimum bounding area and its dimensions, and the
// realized size of every cell. The [Store] interface has three backends:
//   - memory: for tests and the default server configuration
//   - file: for the CLI history (~/.local/share/floorplan/results/)
//   - mongo: for multi-instance server deployments
package results

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bbaird/floorplan/pkg/floorplan"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a result does not exist.
	ErrNotFound = errors.New("result not found")
)

// CellDims is the realized size chosen for one cell.
type CellDims struct {
	Name string  `json:"name" bson:"name"`
	W    float64 `json:"w" bson:"w"`
	H    float64 `json:"h" bson:"h"`
}

// Result is one completed evaluation.
type Result struct {
	ID          string     `json:"id" bson:"_id"`
	NPE         string     `json:"npe" bson:"npe"`
	Area        float64    `json:"area" bson:"area"`
	Width       float64    `json:"width" bson:"width"`
	Height      float64    `json:"height" bson:"height"`
	AspectRatio float64    `json:"aspect_ratio" bson:"aspect_ratio"`
	CurveSize   int        `json:"curve_size" bson:"curve_size"`
	Cells       []CellDims `json:"cells" bson:"cells"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
}

// New assembles a result from an evaluated tree. The tree's root must
// have been evaluated.
func New(npe string, root *floorplan.Node) *Result {
	r := &Result{
		ID:          uuid.NewString(),
		NPE:         npe,
		Area:        root.Area,
		AspectRatio: root.AspectRatio,
		CurveSize:   len(root.Curve),
		CreatedAt:   time.Now().UTC(),
	}
	if root.Selected != nil {
		r.Width = root.Selected.W
		r.Height = root.Selected.H
	}
	for _, d := range root.Realize() {
		r.Cells = append(r.Cells, CellDims{Name: string(d.Name), W: d.W, H: d.H})
	}
	return r
}

// Store is the interface for result storage backends.
type Store interface {
	// Get retrieves a result by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Result, error)

	// Put stores a result.
	Put(ctx context.Context, r *Result) error

	// List returns results ordered newest first, at most limit entries
	// (limit <= 0 means no limit).
	List(ctx context.Context, limit int) ([]*Result, error)

	// Delete removes a result. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
