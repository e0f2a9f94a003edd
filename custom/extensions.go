// Package custom registers optional extensions through the cmd, cron, api and
// graphql registries. Import it for its side effects.
package custom

import (
	"context"
	"fmt"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"storefront.GO/api"
	"storefront.GO/cmd"
	"storefront.GO/core/money"
	"storefront.GO/cron"
	gqlregistry "storefront.GO/graphql/registry"
)

func init() {
	// GraphQL extension
	gqlregistry.Register("ping", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return map[string]string{"pong": "ok"}, nil
	})

	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "cron:list",
		Short: "List registered cron jobs and their schedules",
		Run: func(c *cobra.Command, args []string) {
			jobs := cron.Jobs()
			names := make([]string, 0, len(jobs))
			for name := range jobs {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(c.OutOrStdout(), "%-20s %s\n", name, jobs[name].Schedule)
			}
		},
	})

	// HTTP route
	api.RegisterGET("/price/format", func(c echo.Context) error {
		var amount int
		if err := echo.QueryParamsBinder(c).Int("amount", &amount).BindError(); err != nil {
			return c.JSON(400, echo.Map{"error": err.Error()})
		}
		return c.JSON(200, echo.Map{"amount": amount, "formatted": money.FormatPrice(amount)})
	})
}
