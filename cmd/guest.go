package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"storefront.GO/config"
	"storefront.GO/core/money"
	"storefront.GO/service/guest"
)

var guestID string

func openGuest(ctx context.Context) (*guest.Session, error) {
	if guestID == "" {
		return nil, fmt.Errorf("--guest is required")
	}
	kv, err := openStorage()
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	prefix := "guest"
	if config.AppConfig != nil && config.AppConfig.StoragePrefix != "" {
		prefix = config.AppConfig.StoragePrefix
	}
	return guest.NewRegistry(kv, prefix).Get(ctx, guestID), nil
}

func printCart(w io.Writer, s *guest.Session) {
	st := s.Cart.State()
	fmt.Fprintf(w, "Cart of guest %s\n", s.ID)
	for _, it := range st.Items {
		fmt.Fprintf(w, "  %-24s %-10s x%-3d %12s\n", it.Product.Name, it.Variant.Size, it.Quantity, money.FormatPrice(it.LineTotal()))
	}
	fmt.Fprintf(w, "Items: %d  Total: %s\n", st.TotalItems, money.FormatPrice(st.TotalAmount))
}

var cartShowCmd = &cobra.Command{
	Use:   "cart:show",
	Short: "Print the saved cart of a guest",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openGuest(cmd.Context())
		if err != nil {
			return err
		}
		printCart(cmd.OutOrStdout(), s)
		return nil
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "cart:clear",
	Short: "Empty the saved cart of a guest",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openGuest(cmd.Context())
		if err != nil {
			return err
		}
		s.Cart.ClearCart(cmd.Context())
		fmt.Fprintf(cmd.OutOrStdout(), "Cart of guest %s cleared\n", s.ID)
		return nil
	},
}

var wishlistShowCmd = &cobra.Command{
	Use:   "wishlist:show",
	Short: "Print the saved wishlist of a guest",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openGuest(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		items := s.Wishlist.Items()
		fmt.Fprintf(w, "Wishlist of guest %s\n", s.ID)
		for _, p := range items {
			fmt.Fprintf(w, "  %-24s %12s\n", p.Name, money.FormatPrice(p.EffectivePrice()))
		}
		fmt.Fprintf(w, "Products: %d\n", len(items))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{cartShowCmd, cartClearCmd, wishlistShowCmd} {
		c.Flags().StringVarP(&guestID, "guest", "g", "", "Guest id (X-Guest-ID)")
		rootCmd.AddCommand(c)
	}
}
