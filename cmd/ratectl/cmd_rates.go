package main

import (
	"fmt"
	"os"

	"courier-rates/internal/features/rates/adapters"
	"courier-rates/internal/features/rates/domain"
	"courier-rates/internal/features/rates/ports"

	"github.com/spf13/cobra"
)

func newSeedCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Upsert the default rate grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requirePersistentStore(); err != nil {
				return err
			}
			return c.withRepo(cmd.Context(), func(repo ports.RateRepository) error {
				n, err := repo.Upsert(cmd.Context(), adapters.DefaultGrid())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d default rates\n", n)
				return nil
			})
		},
	}
}

func newImportCmd(c *cli) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <rate-card.xlsx>",
		Short: "Upsert every row of an XLSX rate card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requirePersistentStore(); err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			slabs, err := adapters.ReadRateCard(f)
			if err != nil {
				return err
			}

			return c.withRepo(cmd.Context(), func(repo ports.RateRepository) error {
				if replace {
					for key := range keysOf(slabs) {
						if err := repo.DeleteScope(cmd.Context(), key); err != nil {
							return err
						}
					}
				}
				n, err := repo.Upsert(cmd.Context(), slabs)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d rates from %s\n", n, args[0])
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Drop existing rows of every zone pair in the card first")
	return cmd
}

func keysOf(slabs []domain.RateSlab) map[domain.SlabKey]struct{} {
	keys := make(map[domain.SlabKey]struct{})
	for _, s := range slabs {
		keys[s.Key()] = struct{}{}
	}
	return keys
}

func parseKey(from, to, user string) (domain.SlabKey, error) {
	zf, ok := domain.ParseZone(from)
	if !ok {
		return domain.SlabKey{}, fmt.Errorf("unknown zone %q", from)
	}
	zt, ok := domain.ParseZone(to)
	if !ok {
		return domain.SlabKey{}, fmt.Errorf("unknown zone %q", to)
	}
	scope := domain.DefaultScope()
	if user != "" {
		scope = domain.UserScope(user)
	}
	return domain.SlabKey{Scope: scope, ZoneFrom: zf, ZoneTo: zt}, nil
}

func newExportCmd(c *cli) *cobra.Command {
	var from, to, user string

	cmd := &cobra.Command{
		Use:   "export <rate-card.xlsx>",
		Short: "Write the slabs of one zone pair to an XLSX rate card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requirePersistentStore(); err != nil {
				return err
			}
			key, err := parseKey(from, to, user)
			if err != nil {
				return err
			}

			return c.withRepo(cmd.Context(), func(repo ports.RateRepository) error {
				slabs, err := repo.Slabs(cmd.Context(), key)
				if err != nil {
					return err
				}

				f, err := os.Create(args[0])
				if err != nil {
					return err
				}
				if err := adapters.WriteRateCard(f, slabs); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d rates for %s to %s\n", len(slabs), key, args[0])
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&from, "zone-from", "", "Origin zone")
	cmd.Flags().StringVar(&to, "zone-to", "", "Destination zone")
	cmd.Flags().StringVar(&user, "user", "", "Export a user's negotiated rates instead of the defaults")
	_ = cmd.MarkFlagRequired("zone-from")
	_ = cmd.MarkFlagRequired("zone-to")
	return cmd
}
