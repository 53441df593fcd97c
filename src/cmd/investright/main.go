package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tradekit/investright/src/auth"
	"github.com/tradekit/investright/src/broker"
	"github.com/tradekit/investright/src/config"
	"github.com/tradekit/investright/src/models"
	"github.com/tradekit/investright/src/symbols"
	"github.com/tradekit/investright/src/utils"
)

var rootCmd = &cobra.Command{
	Use:   "investright",
	Short: "InvestRight broker adapter CLI",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		if err := utils.InitEnvironmentVariables(goEnv); err != nil {
			log.Warnf("error loading environment variables: %v", err)
		}
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Run the OAuth2 authorization flow and print the token set",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.FromEnv()
		manager := auth.NewManager(cfg, nil)

		state := uuid.NewString()

		authURL, err := manager.AuthorizationURL(state)
		if err != nil {
			log.Fatalf("failed to build authorization URL: %v", err)
		}

		fmt.Println("Open this URL in a browser to grant access:")
		fmt.Println(authURL)

		code, err := waitForCallback(cfg.RedirectURI, state)
		if err != nil {
			log.Fatalf("failed to capture authorization code: %v", err)
		}

		token := manager.ExchangeCode(cmd.Context(), code)
		if token == nil {
			log.Fatal("token exchange failed")
		}

		printJSON(token)
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh an access token",
	Run: func(cmd *cobra.Command, args []string) {
		refreshToken, err := cmd.Flags().GetString("refresh-token")
		if err != nil {
			log.Fatalf("error getting refresh-token: %v", err)
		}

		manager := auth.NewManager(config.FromEnv(), nil)

		token := manager.RefreshToken(cmd.Context(), refreshToken)
		if token == nil {
			log.Fatal("token refresh failed")
		}

		printJSON(token)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check whether an access token is still live",
	Run: func(cmd *cobra.Command, args []string) {
		manager := auth.NewManager(config.FromEnv(), nil)

		if manager.IsTokenValid(cmd.Context(), accessToken(cmd)) {
			fmt.Println("token is valid")
		} else {
			fmt.Println("token is invalid")
			os.Exit(1)
		}
	},
}

var placeCmd = &cobra.Command{
	Use:   "place",
	Short: "Place a new order",
	Run: func(cmd *cobra.Command, args []string) {
		gateway, _ := newGateways()
		result := gateway.PlaceOrder(cmd.Context(), orderFromFlags(cmd), accessToken(cmd))
		printJSON(result)
	},
}

var modifyCmd = &cobra.Command{
	Use:   "modify",
	Short: "Modify a pending order",
	Run: func(cmd *cobra.Command, args []string) {
		orderID, err := cmd.Flags().GetString("order-id")
		if err != nil {
			log.Fatalf("error getting order-id: %v", err)
		}

		gateway, _ := newGateways()
		result := gateway.ModifyOrder(cmd.Context(), orderID, orderFromFlags(cmd), accessToken(cmd))
		printJSON(result)
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel a pending order",
	Run: func(cmd *cobra.Command, args []string) {
		orderID, err := cmd.Flags().GetString("order-id")
		if err != nil {
			log.Fatalf("error getting order-id: %v", err)
		}

		gateway, _ := newGateways()
		printJSON(gateway.CancelOrder(cmd.Context(), orderID, accessToken(cmd)))
	},
}

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Fetch a single order",
	Run: func(cmd *cobra.Command, args []string) {
		orderID, err := cmd.Flags().GetString("order-id")
		if err != nil {
			log.Fatalf("error getting order-id: %v", err)
		}

		gateway, _ := newGateways()
		printJSON(gateway.GetOrder(cmd.Context(), orderID, accessToken(cmd)))
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List the day's orders",
	Run: func(cmd *cobra.Command, args []string) {
		gateway, _ := newGateways()

		result := gateway.GetOrderBook(cmd.Context(), accessToken(cmd))
		if result.Status != models.StatusSuccess {
			log.Fatalf("failed to fetch order book: %s", result.Message)
		}

		renderOrders(result.Orders)
	},
}

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "List the day's trades",
	Run: func(cmd *cobra.Command, args []string) {
		gateway, _ := newGateways()

		result := gateway.GetTradeBook(cmd.Context(), accessToken(cmd))
		if result.Status != models.StatusSuccess {
			log.Fatalf("failed to fetch trade book: %s", result.Message)
		}

		renderTrades(result.Trades)
	},
}

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "List open positions",
	Run: func(cmd *cobra.Command, args []string) {
		gateway, _ := newGateways()

		result := gateway.GetPositions(cmd.Context(), accessToken(cmd))
		if result.Status != models.StatusSuccess {
			log.Fatalf("failed to fetch positions: %s", result.Message)
		}

		renderPositions(result.Positions)
	},
}

var holdingsCmd = &cobra.Command{
	Use:   "holdings",
	Short: "List delivery holdings",
	Run: func(cmd *cobra.Command, args []string) {
		gateway, _ := newGateways()

		result := gateway.GetHoldings(cmd.Context(), accessToken(cmd))
		if result.Status != models.StatusSuccess {
			log.Fatalf("failed to fetch holdings: %s", result.Message)
		}

		renderHoldings(result.Holdings)
	},
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Fetch the live quote for a symbol",
	Run: func(cmd *cobra.Command, args []string) {
		_, marketData := newGateways()
		printJSON(marketData.GetQuotes(cmd.Context(), flagString(cmd, "symbol"), flagString(cmd, "exchange"), accessToken(cmd)))
	},
}

var depthCmd = &cobra.Command{
	Use:   "depth",
	Short: "Fetch the market depth for a symbol",
	Run: func(cmd *cobra.Command, args []string) {
		_, marketData := newGateways()
		printJSON(marketData.GetDepth(cmd.Context(), flagString(cmd, "symbol"), flagString(cmd, "exchange"), accessToken(cmd)))
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Fetch historical candles, optionally exporting them to CSV",
	Run: func(cmd *cobra.Command, args []string) {
		_, marketData := newGateways()

		data := marketData.GetHistory(
			cmd.Context(),
			flagString(cmd, "symbol"),
			flagString(cmd, "exchange"),
			flagString(cmd, "interval"),
			flagString(cmd, "start"),
			flagString(cmd, "end"),
			accessToken(cmd),
		)

		outDir := flagString(cmd, "out-dir")
		if outDir == "" {
			printJSON(data)
			return
		}

		candles, err := decodeCandles(data)
		if err != nil {
			log.Fatalf("failed to decode candles: %v", err)
		}

		csvPath, err := utils.ExportCandlesToCsv(outDir, candles, fmt.Sprintf("%s_%s", flagString(cmd, "symbol"), flagString(cmd, "interval")))
		if err != nil {
			log.Fatalf("failed to export to CSV: %v", err)
		}

		fmt.Println("CSV file written to:", csvPath)
	},
}

func newGateways() (*broker.OrderGateway, *broker.MarketDataGateway) {
	cfg := config.FromEnv()
	client := broker.NewClient(cfg.APIHost, nil)

	return broker.NewOrderGateway(client, newResolver()), broker.NewMarketDataGateway(client)
}

// newResolver prefers the Redis-backed symbol store when one is configured
// and otherwise leaves symbols untranslated.
func newResolver() symbols.Resolver {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return symbols.NewMapResolver()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	return symbols.NewRedisResolver(rdb)
}

func accessToken(cmd *cobra.Command) string {
	token := flagString(cmd, "access-token")
	if token == "" {
		token = os.Getenv("BROKER_ACCESS_TOKEN")
	}

	if token == "" {
		log.Fatal("missing access token: pass --access-token or set BROKER_ACCESS_TOKEN")
	}

	return token
}

func orderFromFlags(cmd *cobra.Command) models.Order {
	quantity, err := cmd.Flags().GetInt("quantity")
	if err != nil {
		log.Fatalf("error getting quantity: %v", err)
	}

	price, err := cmd.Flags().GetFloat64("price")
	if err != nil {
		log.Fatalf("error getting price: %v", err)
	}

	stopPrice, err := cmd.Flags().GetFloat64("stop-price")
	if err != nil {
		log.Fatalf("error getting stop-price: %v", err)
	}

	disclosedQuantity, err := cmd.Flags().GetInt("disclosed-quantity")
	if err != nil {
		log.Fatalf("error getting disclosed-quantity: %v", err)
	}

	return models.Order{
		Symbol:            flagString(cmd, "symbol"),
		Exchange:          flagString(cmd, "exchange"),
		Side:              models.OrderSide(flagString(cmd, "side")),
		Quantity:          quantity,
		Price:             price,
		OrderType:         models.OrderType(flagString(cmd, "order-type")),
		Product:           models.ProductType(flagString(cmd, "product")),
		Validity:          models.Validity(flagString(cmd, "validity")),
		StopPrice:         stopPrice,
		DisclosedQuantity: disclosedQuantity,
	}
}

func flagString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		log.Fatalf("error getting %s: %v", name, err)
	}

	return val
}

// waitForCallback serves the OAuth redirect URI until the broker redirects
// back with an authorization code, then shuts the server down.
func waitForCallback(redirectURI, expectedState string) (string, error) {
	parsed, err := url.Parse(redirectURI)
	if err != nil {
		return "", fmt.Errorf("waitForCallback: invalid redirect URI: %w", err)
	}

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	router := mux.NewRouter()
	router.HandleFunc(parsed.Path, func(w http.ResponseWriter, r *http.Request) {
		if state := r.URL.Query().Get("state"); state != expectedState {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			errCh <- fmt.Errorf("waitForCallback: state mismatch: %s", state)
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			errCh <- fmt.Errorf("waitForCallback: callback carried no code")
			return
		}

		fmt.Fprintln(w, "Authorization received. You can close this tab.")
		codeCh <- code
	}).Methods(http.MethodGet)

	server := &http.Server{
		Addr:    parsed.Host,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("waitForCallback: callback server failed: %w", err)
		}
	}()

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}()

	select {
	case code := <-codeCh:
		return code, nil
	case err := <-errCh:
		return "", err
	}
}

func decodeCandles(data map[string]interface{}) ([]models.CandleDTO, error) {
	raw, err := json.Marshal(data["candles"])
	if err != nil {
		return nil, fmt.Errorf("decodeCandles: failed to marshal candles: %w", err)
	}

	var candles []models.CandleDTO
	if err := json.Unmarshal(raw, &candles); err != nil {
		return nil, fmt.Errorf("decodeCandles: failed to unmarshal candles: %w", err)
	}

	return candles, nil
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal output: %v", err)
	}

	fmt.Println(string(out))
}

func main() {
	rootCmd.PersistentFlags().String("go-env", "development", "environment to load .env files for")
	rootCmd.PersistentFlags().String("access-token", "", "bearer access token (falls back to BROKER_ACCESS_TOKEN)")

	refreshCmd.Flags().String("refresh-token", "", "refresh token from a previous exchange")
	refreshCmd.MarkFlagRequired("refresh-token")

	for _, cmd := range []*cobra.Command{placeCmd, modifyCmd} {
		cmd.Flags().String("symbol", "", "platform trading symbol")
		cmd.Flags().String("exchange", "", "exchange code (NSE, BSE, NFO)")
		cmd.Flags().String("side", "BUY", "order side (BUY, SELL)")
		cmd.Flags().Int("quantity", 0, "order quantity")
		cmd.Flags().Float64("price", 0, "limit price")
		cmd.Flags().String("order-type", "MARKET", "order type (MARKET, LIMIT, STOP_LOSS, STOP_LOSS_LIMIT)")
		cmd.Flags().String("product", "MIS", "product type (MIS, CNC, NRML)")
		cmd.Flags().String("validity", "DAY", "validity (DAY, IOC, GTC)")
		cmd.Flags().Float64("stop-price", 0, "trigger price for stop orders")
		cmd.Flags().Int("disclosed-quantity", 0, "disclosed quantity")
		cmd.MarkFlagRequired("symbol")
		cmd.MarkFlagRequired("exchange")
		cmd.MarkFlagRequired("quantity")
	}

	for _, cmd := range []*cobra.Command{modifyCmd, cancelCmd, orderCmd} {
		cmd.Flags().String("order-id", "", "broker-assigned order id")
		cmd.MarkFlagRequired("order-id")
	}

	for _, cmd := range []*cobra.Command{quoteCmd, depthCmd, historyCmd} {
		cmd.Flags().String("symbol", "", "platform trading symbol")
		cmd.Flags().String("exchange", "", "exchange code (NSE, BSE, NFO)")
		cmd.MarkFlagRequired("symbol")
		cmd.MarkFlagRequired("exchange")
	}

	historyCmd.Flags().String("interval", "1d", "candle interval (1m, 5m, 15m, 30m, 60m, 1d)")
	historyCmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	historyCmd.Flags().String("end", "", "end date (YYYY-MM-DD)")
	historyCmd.Flags().String("out-dir", "", "directory for CSV export; prints JSON when empty")
	historyCmd.MarkFlagRequired("start")
	historyCmd.MarkFlagRequired("end")

	rootCmd.AddCommand(loginCmd, refreshCmd, validateCmd, placeCmd, modifyCmd, cancelCmd,
		orderCmd, ordersCmd, tradesCmd, positionsCmd, holdingsCmd, quoteCmd, depthCmd, historyCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
