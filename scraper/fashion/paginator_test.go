package fashion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashion-scraper/utils"
)

type fakeFetcher struct {
	pages map[int]string
	fail  map[int]error
	calls []int
	at    []time.Time
}

func (f *fakeFetcher) FetchPage(_ context.Context, page int) ([]byte, error) {
	f.calls = append(f.calls, page)
	f.at = append(f.at, time.Now())
	if err, ok := f.fail[page]; ok {
		return nil, err
	}
	return []byte(f.pages[page]), nil
}

func card(title string) string {
	return fmt.Sprintf(`<div class="collection-card"><h3 class="product-title">%s</h3><span class="price">$1.00</span></div>`, title)
}

func newTestPaginator(f PageFetcher, delay time.Duration) *Paginator {
	return NewPaginator(f, "https://example.test/", utils.NewPacer(delay), 10, utils.NewDiscardLogger())
}

func TestCollect_OrderAndFailureIsolation(t *testing.T) {
	f := &fakeFetcher{
		pages: map[int]string{
			1: card("A1") + card("A2"),
			3: card("C1"),
			4: "<html></html>",
		},
		fail: map[int]error{2: errors.New("connection reset")},
	}

	res, err := newTestPaginator(f, 0).Collect(context.Background(), 1, 4)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4}, f.calls)
	titles := make([]string, len(res.Products))
	for i, p := range res.Products {
		titles[i] = p.Title
	}
	assert.Equal(t, []string{"A1", "A2", "C1"}, titles)

	require.Len(t, res.Pages, 4)
	assert.Equal(t, "https://example.test/Page2", res.Pages[1].URL)
	require.Len(t, res.Failed(), 1)
	assert.Equal(t, 2, res.Failed()[0].Page)
	assert.Empty(t, res.Pages[3].Products)
}

func TestCollect_AllPagesFail(t *testing.T) {
	f := &fakeFetcher{fail: map[int]error{1: errors.New("x"), 2: errors.New("y")}}

	res, err := newTestPaginator(f, 0).Collect(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Empty(t, res.Products)
	assert.Len(t, res.Failed(), 2)
}

func TestCollect_PacesBetweenPages(t *testing.T) {
	delay := 40 * time.Millisecond
	f := &fakeFetcher{fail: map[int]error{2: errors.New("down")}}

	_, err := newTestPaginator(f, delay).Collect(context.Background(), 1, 3)
	require.NoError(t, err)
	require.Len(t, f.at, 3)
	for i := 1; i < len(f.at); i++ {
		assert.GreaterOrEqual(t, f.at[i].Sub(f.at[i-1]), delay)
	}
}

func TestCollect_InvalidRange(t *testing.T) {
	f := &fakeFetcher{}
	_, err := newTestPaginator(f, 0).Collect(context.Background(), 3, 2)
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = newTestPaginator(f, 0).Collect(context.Background(), 0, 2)
	require.ErrorIs(t, err, ErrInvalidRange)
	assert.Empty(t, f.calls)
}

func TestCollect_Cancelled(t *testing.T) {
	f := &fakeFetcher{pages: map[int]string{1: card("A1")}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := newTestPaginator(f, time.Hour).Collect(ctx, 1, 5)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestCollect_SkippedCardsKeepPage(t *testing.T) {
	stubReadCard(t, "A2", func() error { return errors.New("no price") })
	f := &fakeFetcher{pages: map[int]string{1: card("A1") + card("A2") + card("A3")}}

	res, err := newTestPaginator(f, 0).Collect(context.Background(), 1, 1)
	require.NoError(t, err)

	require.Len(t, res.Pages, 1)
	assert.Empty(t, res.Failed())
	assert.Equal(t, []CardError{{Index: 1, Reason: "no price"}}, res.Pages[0].Skipped)
	require.Len(t, res.Products, 2)
	assert.Equal(t, "A1", res.Products[0].Title)
	assert.Equal(t, "A3", res.Products[1].Title)
}

func TestCollect_ReportsProgress(t *testing.T) {
	var out bytes.Buffer
	logger := utils.NewLoggerTo(&out, &out, utils.LevelInfo)
	f := &fakeFetcher{pages: map[int]string{}}

	_, err := NewPaginator(f, "https://example.test/", utils.NewPacer(0), 10, logger).
		Collect(context.Background(), 1, 12)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Progress: 10/12 pages completed")
	assert.Equal(t, 1, strings.Count(out.String(), "Progress:"))
}
