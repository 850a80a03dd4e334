// internal/core/usecases/aggregator_test.go
package usecases

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"netsql/internal/core/domain"
)

func reportOf(rows int) *domain.Table {
	t := domain.NewTable([]string{"Interface", "Status"})
	for i := 0; i < rows; i++ {
		t.Rows = append(t.Rows, []string{fmt.Sprintf("Gi1/0/%d", i+1), "connected"})
	}
	return t
}

func succeeded(h domain.Host, rows int) *domain.RunResult {
	r := domain.NewRunResult(h)
	r.Attempted = true
	r.Succeeded = true
	r.State = domain.HostStateDone
	r.ReportTable = reportOf(rows)
	return r
}

func failed(h domain.Host, err error) *domain.RunResult {
	r := domain.NewRunResult(h)
	r.Attempted = true
	r.Fail(err)
	return r
}

func TestAggregator_OrdersByHostIndex(t *testing.T) {
	hs := hosts("10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4")
	agg := NewAggregator(AggregatorOptions{TotalHosts: len(hs), ScreenLines: 10})

	// llegan en orden inverso
	agg.Record(succeeded(hs[3], 1))
	agg.Record(failed(hs[2], domain.ErrSessionTimeout))
	agg.Record(succeeded(hs[1], 2))
	agg.Record(failed(hs[0], domain.ErrSession))

	s := agg.Finalize()
	require.Len(t, s.Entries, 2)
	require.Equal(t, "10.0.0.2", s.Entries[0].Host.Address)
	require.Equal(t, "10.0.0.4", s.Entries[1].Host.Address)
	require.Len(t, s.FailedHosts, 2)
	require.Equal(t, "10.0.0.1", s.FailedHosts[0].Host.Address)
	require.Contains(t, s.FailedHosts[1].Reason, "timed out")
	require.Equal(t, 4, s.TotalHosts)
	require.Equal(t, 2, s.SucceededHosts)
	require.Equal(t, 3, s.TotalRows())
	require.NotEmpty(t, s.RunID)
}

func TestAggregator_ConcurrentRecord(t *testing.T) {
	addrs := make([]string, 50)
	for i := range addrs {
		addrs[i] = fmt.Sprintf("10.1.0.%d", i+1)
	}
	hs := hosts(addrs...)
	agg := NewAggregator(AggregatorOptions{TotalHosts: len(hs), ScreenLines: 5})

	var wg sync.WaitGroup
	for i, h := range hs {
		wg.Add(1)
		go func(i int, h domain.Host) {
			defer wg.Done()
			if i%5 == 0 {
				agg.Record(failed(h, domain.ErrSessionTimeout))
				return
			}
			agg.Record(succeeded(h, 1))
		}(i, h)
	}
	wg.Wait()

	s := agg.Finalize()
	require.Equal(t, 50, agg.Attempted())
	require.Equal(t, 40, s.SucceededHosts)
	require.Len(t, s.Entries, 40)
	require.Len(t, s.FailedHosts, 10)
	for i := 1; i < len(s.Entries); i++ {
		require.Less(t, s.Entries[i-1].Host.Index, s.Entries[i].Host.Index)
	}
}

func TestAggregator_ScreenLinesAndFull(t *testing.T) {
	h := hosts("10.0.0.1")[0]

	agg := NewAggregator(AggregatorOptions{ScreenLines: 3})
	entry, ok := agg.Record(succeeded(h, 10))
	require.True(t, ok)
	require.Equal(t, 3, entry.Table.Len())
	require.Equal(t, 10, entry.RowCount)
	require.Nil(t, entry.Full)

	agg = NewAggregator(AggregatorOptions{ScreenLines: 3, KeepFull: true})
	entry, _ = agg.Record(succeeded(h, 10))
	require.Equal(t, 3, entry.Table.Len())
	require.Equal(t, 10, entry.Full.Len())
}

func TestAggregator_IgnoresUnattempted(t *testing.T) {
	hs := hosts("10.0.0.1", "10.0.0.2", "10.0.0.3")
	agg := NewAggregator(AggregatorOptions{TotalHosts: 3, RunID: "run-1"})

	_, ok := agg.Record(domain.NewRunResult(hs[2]))
	require.False(t, ok)
	_, ok = agg.Record(nil)
	require.False(t, ok)
	agg.Record(succeeded(hs[0], 1))

	s := agg.Finalize()
	require.Equal(t, "run-1", s.RunID)
	require.Equal(t, 1, agg.Attempted())
	require.Equal(t, 3, s.TotalHosts)
	require.Equal(t, 1, s.AttemptedHosts, "unattempted hosts are not counted as attempted")
	require.Empty(t, s.FailedHosts)
}

func TestAggregator_SuccessWithoutReport(t *testing.T) {
	h := hosts("10.0.0.1")[0]
	r := domain.NewRunResult(h)
	r.Attempted = true
	r.Succeeded = true

	agg := NewAggregator(AggregatorOptions{TotalHosts: 1})
	_, ok := agg.Record(r)
	require.False(t, ok)

	s := agg.Finalize()
	require.Equal(t, 1, s.SucceededHosts)
	require.Empty(t, s.Entries)
}
