package marketplace

import (
	"context"
	"fmt"

	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/inventory"
	"github.com/agentstation/stocksync/pkg/logging"
)

// FetchOffers pages through the account's offer listing until exhaustion and
// returns every identifier in page order.
//
// Both pagination conventions are supported: a cursor listing ends when Next
// is empty, a count listing ends once the accumulated item count reaches
// Total. An empty page before exhaustion is reported as a protocol error.
// Any page error aborts the fetch and no partial set is returned.
func FetchOffers(ctx context.Context, m Marketplace) (*inventory.OfferSet, error) {
	logger := logging.FromContext(ctx)
	offers := inventory.NewOfferSet()

	var (
		cursor   string
		received int
	)
	for pages := 1; ; pages++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := m.ListOffers(ctx, cursor)
		if err != nil {
			return nil, err
		}
		if page == nil {
			page = &Page{}
		}

		received += len(page.IDs)
		offers.Add(page.IDs...)

		logger.Debug().
			Int("page", pages).
			Int("items", len(page.IDs)).
			Int("received", received).
			Int("total", page.Total).
			Msg("Fetched offer page")

		if page.Total > 0 {
			if received >= page.Total {
				break
			}
		} else if page.Next == "" {
			break
		}

		if len(page.IDs) == 0 {
			return nil, stalled(m, pages, received, page.Total)
		}
		if page.Next == "" {
			// count listing with more to come but no cursor to continue from
			return nil, stalled(m, pages, received, page.Total)
		}
		cursor = page.Next
	}

	return offers, nil
}

func stalled(m Marketplace, page, received, total int) error {
	msg := fmt.Sprintf("pagination stalled on page %d after %d items", page, received)
	if total > 0 {
		msg = fmt.Sprintf("%s of %d", msg, total)
	}
	return errors.NewAPIError(m.ID().String(), 0, msg)
}
