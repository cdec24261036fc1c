package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"contactsheet/internal/logging"
	"contactsheet/internal/sampling"
)

// Request carries the per-run parameters shared by every packet.
type Request struct {
	Input            string
	Dir              string
	FilenameTemplate string
}

// Progress is reported after each successful packet.
type Progress struct {
	Packet   int
	Packets  int
	Produced int
}

// Result lists the filenames of every packet that completed.
type Result struct {
	Filenames []string
	Completed int
	Packets   int
}

// PacketError reports the packet that stopped a run.
type PacketError struct {
	Index int
	Err   error
}

func (e *PacketError) Error() string {
	return fmt.Sprintf("packet %d: %v", e.Index, e.Err)
}

func (e *PacketError) Unwrap() error {
	return e.Err
}

// Scheduler runs packets sequentially through a Backend.
type Scheduler struct {
	Backend Backend
	// Delay is the pause after each successful packet except the last.
	Delay time.Duration
	// PacketTimeout bounds a single Extract call; zero disables it.
	PacketTimeout time.Duration
	Logger        *slog.Logger
	Progress      func(Progress)
}

// Run extracts every packet in order. On failure it returns the filenames of
// the packets that finished before it together with a *PacketError.
func (s *Scheduler) Run(ctx context.Context, packets []sampling.Packet, req Request) (Result, error) {
	result := Result{Packets: len(packets)}
	if s.Backend == nil {
		return result, errors.New("extraction backend not configured")
	}
	logger := logging.WithContext(ctx, s.Logger)

	for i, packet := range packets {
		if err := ctx.Err(); err != nil {
			return result, &PacketError{Index: packet.Index, Err: err}
		}
		logger.Debug("starting packet",
			logging.Int("packet", i+1),
			logging.Int("packets", len(packets)),
			logging.Int("offsets", len(packet.Offsets)),
		)

		names, err := s.runPacket(ctx, packet, req)
		if err != nil {
			logger.Warn("packet failed",
				logging.Int("packet", i+1),
				logging.Int("packets", len(packets)),
				logging.Error(err),
			)
			return result, &PacketError{Index: packet.Index, Err: err}
		}
		result.Filenames = append(result.Filenames, names...)
		result.Completed++
		logger.Info(fmt.Sprintf("screenshots taken for packet (%d/%d)", i+1, len(packets)),
			logging.Int("produced", len(result.Filenames)),
		)
		if s.Progress != nil {
			s.Progress(Progress{Packet: i + 1, Packets: len(packets), Produced: len(result.Filenames)})
		}

		if i == len(packets)-1 || s.Delay <= 0 {
			continue
		}
		if err := wait(ctx, s.Delay); err != nil {
			return result, &PacketError{Index: packets[i+1].Index, Err: err}
		}
	}
	return result, nil
}

func (s *Scheduler) runPacket(ctx context.Context, packet sampling.Packet, req Request) ([]string, error) {
	packetCtx := ctx
	if s.PacketTimeout > 0 {
		var cancel context.CancelFunc
		packetCtx, cancel = context.WithTimeout(ctx, s.PacketTimeout)
		defer cancel()
	}

	var announced []string
	job := Job{
		Input:            req.Input,
		Offsets:          append([]float64(nil), packet.Offsets...),
		Dir:              req.Dir,
		FilenameTemplate: req.FilenameTemplate,
	}
	err := s.Backend.Extract(packetCtx, job, func(names []string) {
		announced = append(announced, names...)
	})
	if err != nil {
		return nil, err
	}
	if len(announced) == 0 {
		announced = sampling.Filenames(req.FilenameTemplate, packet.Offsets)
	}
	return announced, nil
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
