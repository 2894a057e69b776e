package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"courier-rates/internal/core/config"
	pincodeadapter "courier-rates/internal/features/pincodes/adapters"
	pincodeservice "courier-rates/internal/features/pincodes/service"
	rateadapter "courier-rates/internal/features/rates/adapters"
	"courier-rates/internal/features/rates/domain"
	"courier-rates/internal/features/rates/ports"
	"courier-rates/internal/features/rates/service"

	"github.com/spf13/cobra"
)

func newQuoteCmd(c *cli) *cobra.Command {
	var user string
	var declared float64
	var insure bool

	cmd := &cobra.Command{
		Use:   "quote <origin> <destination> <weight-kg>",
		Short: "Price one shipment against the configured rate table (the default grid on a memory store)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid weight %q: %w", args[2], err)
			}

			directory := pincodeservice.NewDirectory(
				pincodeadapter.NewSource(c.cfg.Pincodes.Dataset),
				c.cfg.Pincodes.PickupStateList(),
			)

			return c.withRepo(cmd.Context(), func(repo ports.RateRepository) error {
				if c.cfg.Rates.Store == config.StoreMemory {
					if _, err := repo.Upsert(cmd.Context(), rateadapter.DefaultGrid()); err != nil {
						return err
					}
				}
				quotes := service.NewQuoteService(directory, service.NewResolver(repo, c.cfg.Rates.BulkConcurrency))
				q, err := quotes.GetQuote(cmd.Context(), domain.QuoteRequest{
					OriginPincode:      args[0],
					DestinationPincode: args[1],
					PackageWeight:      weight,
					UserID:             user,
					DeclaredValue:      declared,
					InsuranceSelected:  insure,
				})
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(q)
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "Prefer this user's negotiated rates")
	cmd.Flags().Float64Var(&declared, "declared-value", 0, "Declared shipment value")
	cmd.Flags().BoolVar(&insure, "insurance", false, "Insure the shipment")
	return cmd
}
