package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/martijn/secondchance/internal/api/util"
	"github.com/martijn/secondchance/internal/core/repository"
	"github.com/spf13/cobra"
)

var (
	itemsQuery string
	itemsOrder string
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Inspect listed items",
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List items",
	Long: `List items, optionally filtered and ordered.

Examples:
  secondchance items list --query category|Kitchen
  secondchance items list --order age_days|desc`,
	RunE: func(cmd *cobra.Command, args []string) error {
		listFilter, err := util.NewListFilter(itemsQuery, itemsOrder, 1, 0, repository.ItemFields)
		if err != nil {
			return err
		}

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		items, _, err := services.ItemService.ListItems(cmd.Context(), repository.ItemFilter{ListFilter: listFilter})
		if err != nil {
			return err
		}

		if len(items) == 0 {
			fmt.Println("No items found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tCONDITION\tAGE (YEARS)\tADDED")
		for _, item := range items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.1f\t%s\n",
				item.ID,
				item.Name,
				item.Category,
				item.Condition,
				item.AgeYears,
				time.Unix(item.DateAdded, 0).UTC().Format("2006-01-02 15:04:05"),
			)
		}
		w.Flush()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(itemsCmd)
	itemsCmd.AddCommand(itemsListCmd)

	itemsListCmd.Flags().StringVar(&itemsQuery, "query", "", "filters as field|op|value, comma separated")
	itemsListCmd.Flags().StringVar(&itemsOrder, "order", "", "ordering as field|asc or field|desc")
}
