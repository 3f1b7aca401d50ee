package constants_test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/agentstation/stocksync/pkg/constants"
)

// Example demonstrates sizing batches with the marketplace limits
func Example() {
	offers := 4500
	fmt.Printf("Yandex stock batches: %d\n", (offers+constants.YandexStockBatchSize-1)/constants.YandexStockBatchSize)
	fmt.Printf("Ozon stock batches: %d\n", (offers+constants.OzonStockBatchSize-1)/constants.OzonStockBatchSize)
	// Output:
	// Yandex stock batches: 3
	// Ozon stock batches: 45
}

// Example_timeouts demonstrates timeout constants
func Example_timeouts() {
	client := &http.Client{
		Timeout: constants.DefaultHTTPTimeout,
	}
	fmt.Printf("HTTP timeout: %v\n", client.Timeout)

	ctx, cancel := context.WithTimeout(context.Background(), constants.SyncTimeout)
	defer cancel()

	_, hasDeadline := ctx.Deadline()
	fmt.Printf("Sync deadline set: %v\n", hasDeadline)
	// Output:
	// HTTP timeout: 30s
	// Sync deadline set: true
}

// Example_feed shows the supplier feed defaults
func Example_feed() {
	fmt.Println(constants.DefaultFeedEntry)
	fmt.Println(constants.DefaultHeaderRow)
	fmt.Println(constants.DefaultCodeColumn, constants.DefaultQuantityColumn, constants.DefaultPriceColumn)
	// Output:
	// ostatki.xls
	// 17
	// Код Количество Цена
}
