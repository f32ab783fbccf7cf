package cmd

import (
	"context"
	"fmt"

	"github.com/carousell/ct-go/pkg/logger/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/storefront-core/internal/apiclient"
	"github.com/nguyentranbao-ct/storefront-core/internal/app"
	"github.com/nguyentranbao-ct/storefront-core/internal/cart"
	"github.com/nguyentranbao-ct/storefront-core/internal/mockapi"
	"github.com/nguyentranbao-ct/storefront-core/internal/models"
	"github.com/nguyentranbao-ct/storefront-core/internal/pricing"
	"github.com/nguyentranbao-ct/storefront-core/internal/session"
)

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Storefront client core",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var mockAPICmd = &cobra.Command{
	Use:   "mock-api",
	Short: "Run the in-memory mock of the storefront backend",
	Run: func(cmd *cobra.Command, args []string) {
		app.Invoke(
			mockapi.StartServer,
		).Run()
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Exercise a guest-to-login cart flow against the configured backend",
	Run: func(cmd *cobra.Command, args []string) {
		app.Invoke(
			runDemo,
		).Run()
	},
}

func init() {
	rootCmd.AddCommand(mockAPICmd)
	rootCmd.AddCommand(demoCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// runDemo walks the full client flow: browse as guest, fill a local cart,
// register and log in (triggering the configured merge strategy), then
// price the merged cart.
func runDemo(
	sd fx.Shutdowner,
	client *apiclient.Client,
	sess session.Provider,
	store cart.Store,
	calc *pricing.Calculator,
) error {
	defer sd.Shutdown() //nolint:errcheck

	ctx := context.Background()
	sess.CheckSession(ctx)

	featured, err := client.FeaturedProducts(ctx)
	if err != nil {
		return fmt.Errorf("fetch featured products: %w", err)
	}
	if len(featured) < 2 {
		return fmt.Errorf("backend returned %d featured products, need at least 2", len(featured))
	}

	// Guest mutations: local-only, no network involved.
	if err := store.AddLine(ctx, &featured[0], 1); err != nil {
		return err
	}
	if err := store.AddLine(ctx, &featured[1], 2); err != nil {
		return err
	}
	fmt.Printf("guest cart: %d items, subtotal %s\n", store.TotalQuantity(), store.Subtotal().Format())

	suffix := uuid.NewString()[:8]
	result := sess.Register(ctx, models.RegisterRequest{
		Username: "demo-" + suffix,
		Email:    "demo-" + suffix + "@example.com",
		Password: "demo-password-1",
	})
	if !result.Success {
		return fmt.Errorf("register: %s", result.Error)
	}
	fmt.Printf("logged in as %s\n", sess.User().Username)
	fmt.Printf("cart after login: %d items, subtotal %s\n", store.TotalQuantity(), store.Subtotal().Format())

	quote := calc.Quote(store.Lines(), pricing.DefaultMethodID)
	fmt.Printf("subtotal=%s shipping=%s tax=%s total=%s\n",
		quote.Subtotal.Format(),
		quote.ShippingCost.Format(),
		quote.Tax.Format(),
		quote.Total.Format(),
	)

	sess.Logout(ctx)
	fmt.Printf("cart after logout: %d items\n", store.TotalQuantity())
	return nil
}
