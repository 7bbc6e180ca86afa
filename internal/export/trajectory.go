package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/orrery/internal/orbit"
)

type BodySample struct {
	Name  string
	X, Z  float64
	Angle float64
}

// Frame is every body's position after a tick.
type Frame struct {
	Tick   int
	Bodies []BodySample
}

// Sample captures the current state of the system.
func Sample(s *orbit.System, tick int) Frame {
	bodies := s.Bodies()
	f := Frame{Tick: tick, Bodies: make([]BodySample, len(bodies))}
	for i, b := range bodies {
		f.Bodies[i] = BodySample{Name: b.Name, X: b.Position.X(), Z: b.Position.Z(), Angle: b.Angle}
	}
	return f
}

// Record ticks the system n times and keeps a frame every `every` ticks,
// including the starting state.
func Record(s *orbit.System, n, every int) []Frame {
	if every < 1 {
		every = 1
	}
	frames := []Frame{Sample(s, 0)}
	for i := 1; i <= n; i++ {
		s.Tick(1, false)
		if i%every == 0 || i == n {
			frames = append(frames, Sample(s, i))
		}
	}
	return frames
}

// WriteCSV writes one row per frame: the tick, then x, z and angle for each body.
func WriteCSV(w io.Writer, frames []Frame) error {
	cw := csv.NewWriter(w)
	if len(frames) == 0 {
		cw.Flush()
		return cw.Error()
	}

	header := []string{"tick"}
	for _, b := range frames[0].Bodies {
		header = append(header, b.Name+"_x", b.Name+"_z", b.Name+"_angle")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, f := range frames {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(f.Tick))
		for _, b := range f.Bodies {
			row = append(row,
				strconv.FormatFloat(b.X, 'f', 6, 64),
				strconv.FormatFloat(b.Z, 'f', 6, 64),
				strconv.FormatFloat(b.Angle, 'f', 6, 64),
			)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
