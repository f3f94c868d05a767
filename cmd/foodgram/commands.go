package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"foodgram/internal/app"
	"foodgram/internal/shopping"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const defaultIngredientsFile = "data/ingredients.csv"

func newLoadIngredientsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load-ingredients [file]",
		Short: "Import the ingredient catalog from CSV or JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultIngredientsFile
			if len(args) == 1 {
				path = args[0]
			}
			return runWithApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				res, err := a.LoadIngredients(ctx, path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Read %d ingredients, %d new, %d in the catalog.\n", res.Read, res.Created, res.Total)
				return nil
			})
		},
	}
}

func newSeedRecipesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-recipes <file.json>",
		Short: "Store recipes with their ingredient amounts from a JSON fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				n, err := a.SeedRecipes(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %d recipes.\n", n)
				return nil
			})
		},
	}
}

func newCartCommand() *cobra.Command {
	var userID string

	cart := &cobra.Command{
		Use:   "cart",
		Short: "Manage a user's shopping cart",
	}
	cart.PersistentFlags().StringVar(&userID, "user", "", "user id")
	_ = cart.MarkPersistentFlagRequired("user")

	cart.AddCommand(
		&cobra.Command{
			Use:   "add <recipe-id>...",
			Short: "Put recipes into the cart",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
					for _, id := range args {
						if err := a.AddToCart(ctx, userID, id); err != nil {
							return fmt.Errorf("recipe %s: %w", id, err)
						}
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove <recipe-id>...",
			Short: "Take recipes out of the cart",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
					for _, id := range args {
						if err := a.RemoveFromCart(ctx, userID, id); err != nil {
							return fmt.Errorf("recipe %s: %w", id, err)
						}
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runWithApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
					n, err := a.ClearCart(ctx, userID)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %d recipes from the cart.\n", n)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "Show the recipes in the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runWithApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
					recipes, err := a.Cart(ctx, userID)
					if err != nil {
						return err
					}
					renderCart(cmd.OutOrStdout(), recipes)
					return nil
				})
			},
		},
	)
	return cart
}

func newExportCommand() *cobra.Command {
	var (
		userID    string
		format    string
		recipeIDs []string
		out       string
		latest    bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a shopping list",
		Long: "Render the shopping list of the user's cart, or of the recipes given\n" +
			"with --recipe, as txt, pdf, xlsx or html. --latest writes the last\n" +
			"archived export of that format instead of building a new one.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if latest && len(recipeIDs) > 0 {
				return fmt.Errorf("--latest and --recipe cannot be combined")
			}
			f, err := shopping.ParseFormat(format)
			if err != nil {
				return err
			}

			return runWithApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				var doc *shopping.ExportDocument
				if latest {
					doc, err = a.LatestExport(userID, f)
				} else if len(recipeIDs) > 0 {
					doc, err = a.ExportShoppingList(ctx, userID, recipeIDs, f)
				} else {
					doc, err = a.ExportForUser(ctx, userID, f)
				}
				if err != nil {
					return err
				}

				if out == "" {
					out = doc.Filename
				}
				if out == "-" {
					_, err = cmd.OutOrStdout().Write(doc.Body)
					return err
				}
				if err := os.WriteFile(out, doc.Body, 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", out, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d bytes)\n", out, len(doc.Body))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().StringVar(&format, "format", string(shopping.FormatText), "txt, pdf, xlsx or html")
	cmd.Flags().StringSliceVar(&recipeIDs, "recipe", nil, "recipe ids to use instead of the cart")
	cmd.Flags().StringVar(&out, "out", "", `output file, "-" for stdout (default shopping_list.<ext>)`)
	cmd.Flags().BoolVar(&latest, "latest", false, "write the last archived export instead of building one")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newRecipeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recipe <recipe-id>",
		Short: "Show a stored recipe with its ingredient amounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				rec, err := a.Recipe(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", rec.Name, rec.ID)

				t := table.NewWriter()
				t.SetOutputMirror(cmd.OutOrStdout())
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"Ingredient", "Unit", "Amount"})
				for _, ing := range rec.Ingredients {
					t.AppendRow(table.Row{ing.Name, ing.MeasurementUnit, ing.Amount.String()})
				}
				t.Render()
				return nil
			})
		},
	}
}

func newMetricsSummaryCommand() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "metrics-summary",
		Short: "Show daily export totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				summary, err := a.DailySummary(ctx, days)
				if err != nil {
					return err
				}
				t := table.NewWriter()
				t.SetOutputMirror(cmd.OutOrStdout())
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"Day", "Exports", "Failures", "Bytes"})
				for _, d := range summary {
					t.AppendRow(table.Row{d.Date, d.Exports, d.Failures, d.TotalBytes})
				}
				t.Render()
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "how many days back to report")
	return cmd
}

func newMetricsCleanupCommand() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "metrics-cleanup",
		Short: "Delete export metrics older than --days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				n, err := a.CleanupMetrics(ctx, days)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d metric rows.\n", n)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "keep metrics from the last N days")
	return cmd
}

func renderCart(w io.Writer, recipes []shopping.CartRecipe) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Recipe"})
	for _, r := range recipes {
		t.AppendRow(table.Row{r.ID, r.Name})
	}
	t.Render()
}
