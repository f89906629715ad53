package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/weiihann/sortbench/sample"
	"github.com/weiihann/sortbench/store"
)

type storeConfig struct {
	backend string
	dbPath  string
}

func newStoreCmd(logger *slog.Logger) *cobra.Command {
	var cfg storeConfig

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Archive sample batches in an embedded database",
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.backend, "backend", "bbolt",
		"Archive backend: "+strings.Join(store.Backends(), ", "))
	flags.StringVar(&cfg.dbPath, "db", "sortbench.db",
		"Archive path (file for bbolt, directory otherwise)")

	cmd.AddCommand(
		newStorePutCmd(logger, &cfg),
		newStoreGetCmd(&cfg),
		newStoreListCmd(&cfg),
		newStoreRmCmd(logger, &cfg),
	)

	return cmd
}

func withStore(cfg *storeConfig, fn func(store.Store) error) error {
	s, err := store.Open(cfg.backend, cfg.dbPath)
	if err != nil {
		return err
	}

	if err := fn(s); err != nil {
		s.Close()

		return err
	}

	return s.Close()
}

func newStorePutCmd(logger *slog.Logger, cfg *storeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "put <name> <batch.json>",
		Short: "Add or replace a batch in the archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := sample.Load(args[1])
			if err != nil {
				return err
			}

			err = withStore(cfg, func(s store.Store) error {
				return s.Put(cmd.Context(), args[0], batch)
			})
			if err != nil {
				return fmt.Errorf("put %s: %w", args[0], err)
			}

			size, err := store.DirSize(cfg.dbPath)
			if err != nil {
				logger.Warn("failed to measure archive size",
					slog.String("error", err.Error()),
				)
			}

			logger.InfoContext(cmd.Context(), "batch archived",
				slog.String("name", args[0]),
				slog.String("backend", cfg.backend),
				slog.Int("samples", len(batch.Samples)),
				slog.Uint64("archive_bytes", size),
			)

			return nil
		},
	}
}

func newStoreGetCmd(cfg *storeConfig) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Write an archived batch as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var batch *sample.Batch

			err := withStore(cfg, func(s store.Store) error {
				var err error
				batch, err = s.Get(cmd.Context(), args[0])

				return err
			})
			if err != nil {
				return err
			}

			w, closeOut, err := openOutput(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}

			if err := batch.Encode(w); err != nil {
				closeOut()

				return fmt.Errorf("write batch: %w", err)
			}

			return closeOut()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "",
		"Write the batch to a file instead of stdout")

	return cmd
}

func newStoreListCmd(cfg *storeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived batch names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cfg, func(s store.Store) error {
				names, err := s.List(cmd.Context())
				if err != nil {
					return err
				}

				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}

				return nil
			})
		},
	}
}

func newStoreRmCmd(logger *slog.Logger, cfg *storeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a batch from the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cfg, func(s store.Store) error {
				return s.Delete(cmd.Context(), args[0])
			})
			if err != nil {
				return err
			}

			logger.InfoContext(cmd.Context(), "batch removed",
				slog.String("name", args[0]),
			)

			return nil
		},
	}
}
