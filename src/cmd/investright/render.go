package main

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tradekit/investright/src/models"
)

var pricePrinter = message.NewPrinter(language.English)

func renderOrders(orders []models.OrderDetail) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Order ID", "Symbol", "Exchange", "Side", "Qty", "Price", "Type", "Product", "Status", "Filled", "Pending", "Avg Price", "Timestamp"})

	for _, o := range orders {
		table.Append([]string{
			o.OrderID,
			o.Symbol,
			o.Exchange,
			o.Side,
			strconv.Itoa(o.Quantity),
			formatPrice(o.Price),
			string(o.OrderType),
			string(o.Product),
			o.OrderStatus,
			strconv.Itoa(o.FilledQuantity),
			strconv.Itoa(o.PendingQuantity),
			formatPrice(o.AveragePrice),
			o.Timestamp,
		})
	}

	table.Render()
}

func renderTrades(trades []models.Trade) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Trade ID", "Order ID", "Symbol", "Exchange", "Side", "Qty", "Price", "Timestamp"})

	for _, t := range trades {
		table.Append([]string{
			t.TradeID,
			t.OrderID,
			t.Symbol,
			t.Exchange,
			t.Side,
			strconv.Itoa(t.Quantity),
			formatPrice(t.Price),
			t.Timestamp,
		})
	}

	table.Render()
}

func renderPositions(positions []models.Position) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Symbol", "Exchange", "Qty", "Product", "Avg Price", "PnL", "PnL %"})

	for _, p := range positions {
		table.Append([]string{
			p.Symbol,
			p.Exchange,
			strconv.Itoa(p.Quantity),
			string(p.Product),
			formatPrice(p.Price),
			formatPrice(p.Pnl),
			formatPrice(p.PnlPercentage),
		})
	}

	table.Render()
}

func renderHoldings(holdings []models.Holding) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Symbol", "Exchange", "Qty", "Avg Price", "Value", "PnL"})

	for _, h := range holdings {
		table.Append([]string{
			h.Symbol,
			h.Exchange,
			strconv.Itoa(h.Quantity),
			formatPrice(h.Price),
			formatPrice(h.Value),
			formatPrice(h.Pnl),
		})
	}

	table.Render()
}

func formatPrice(v float64) string {
	return pricePrinter.Sprintf("%.2f", v)
}
