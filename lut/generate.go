package lut

import (
	"math/big"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/modsqr/precompute/geometry"
	"github.com/modsqr/precompute/logger"
	"github.com/modsqr/precompute/sink"
)

// tableCopies is the number of identical copies of the table body written
// into each artifact. The squaring unit reads a table as two banked halves,
// and the reference artifacts carry the body twice.
const tableCopies = 2

// completer is implemented by sinks that can resume a previous run: Bind
// pins the artifact directory to the run's configuration, Completed reports
// units already committed under it.
type completer interface {
	Bind(fingerprint string)
	Completed(name string) bool
}

// GenerateAll computes and persists every (lut8, lut9) table pair of the
// configuration. Tables are generated in parallel across chunk indices; the
// copies within one artifact are always written in order by a single
// producer. Units already committed by a previous identical run are skipped
// wholesale.
func GenerateAll(cfg geometry.Config, s sink.Sink) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logger.Logger()
	log.Info().
		Int("tables", cfg.Word.TableCount).
		Str("first", FileName(Lut8, 0)).
		Str("last", FileName(Lut9, cfg.Word.TableCount-1)).
		Msg("generating reduction tables")

	done, _ := s.(completer)
	if done != nil {
		done.Bind(cfg.Fingerprint())
	}

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < cfg.Word.TableCount; i++ {
		i := i
		g.Go(func() error {
			for _, kind := range []Kind{Lut8, Lut9} {
				name := FileName(kind, i)
				if done != nil && done.Completed(name) {
					log.Debug().Str("table", name).Msg("already committed, skipping")
					continue
				}
				if err := writeTable(kind, i, cfg, s); err != nil {
					return err
				}
				log.Debug().Str("table", name).Msg("committed")
			}
			return nil
		})
	}
	return g.Wait()
}

func writeTable(kind Kind, index int, cfg geometry.Config, s sink.Sink) error {
	u, err := s.Create(FileName(kind, index), cfg.Word.LutWidth())
	if err != nil {
		return err
	}
	for c := 0; c < tableCopies; c++ {
		err := Entries(kind, index, cfg, func(_ int, e *big.Int) error {
			return u.WriteEntry(e)
		})
		if err != nil {
			u.Abort()
			return err
		}
	}
	return u.Commit()
}
