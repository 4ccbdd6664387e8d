package services

import (
	"context"
	"testing"
	"time"

	"github.com/mishrapravin114/developers-assessment/models"
	"github.com/mishrapravin114/developers-assessment/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewIDs(views []WorklogView) []uuid.UUID {
	ids := make([]uuid.UUID, len(views))
	for i := range views {
		ids[i] = views[i].ID
	}
	return ids
}

type listFixture struct {
	*fixture
	svc        *WorklogService
	remitted   models.WorkLog
	unremitted models.WorkLog
	orphan     models.WorkLog
}

// newListFixture prepares one remitted worklog (20), one open worklog (10)
// and one open worklog whose task no longer exists (adjustment 3).
func newListFixture(t *testing.T) *listFixture {
	f := newFixture(t)
	task := f.task("Build", "20")
	u := f.user(true)

	remitted := f.billableWorklog(u.ID, task, 60)
	_, err := NewRemittanceService(f.db, nil).GenerateRemittances(context.Background())
	require.NoError(t, err)

	unremitted := f.billableWorklog(u.ID, task, 30)
	orphan := f.worklog(u.ID, uuid.New())
	f.adjustment(orphan.ID, "3")

	return &listFixture{
		fixture:    f,
		svc:        NewWorklogService(f.db),
		remitted:   remitted,
		unremitted: unremitted,
		orphan:     orphan,
	}
}

func TestListWorklogs(t *testing.T) {
	ctx := context.Background()

	t.Run("All worklogs with status labels", func(t *testing.T) {
		lf := newListFixture(t)

		list, err := lf.svc.ListWorklogs(ctx, ListWorklogsParams{Limit: 100})
		require.NoError(t, err)
		assert.Equal(t, int64(3), list.Count)
		require.Len(t, list.Data, 3)
		assert.Equal(t, []uuid.UUID{lf.remitted.ID, lf.unremitted.ID, lf.orphan.ID}, viewIDs(list.Data))

		assert.Equal(t, StatusRemitted, list.Data[0].RemittanceStatus)
		assert.Equal(t, 20.0, list.Data[0].Amount)
		require.NotNil(t, list.Data[0].TaskTitle)
		assert.Equal(t, "Build", *list.Data[0].TaskTitle)
		createdAt, err := time.Parse(time.RFC3339Nano, list.Data[0].CreatedAt)
		require.NoError(t, err)
		assert.True(t, lf.remitted.CreatedAt.Equal(createdAt), "created_at %s", list.Data[0].CreatedAt)

		assert.Equal(t, StatusUnremitted, list.Data[1].RemittanceStatus)
		assert.Equal(t, 10.0, list.Data[1].Amount)

		assert.Equal(t, StatusUnremitted, list.Data[2].RemittanceStatus)
		assert.Nil(t, list.Data[2].TaskTitle)
		assert.Equal(t, 3.0, list.Data[2].Amount)
	})

	t.Run("Unknown status yields an empty page", func(t *testing.T) {
		lf := newListFixture(t)

		list, err := lf.svc.ListWorklogs(ctx, ListWorklogsParams{RemittanceStatus: "bogus", Limit: 100})
		require.NoError(t, err)
		assert.Equal(t, int64(0), list.Count)
		assert.NotNil(t, list.Data)
		assert.Empty(t, list.Data)
	})

	t.Run("Remitted filter reports frozen amounts", func(t *testing.T) {
		lf := newListFixture(t)
		lf.segment(lf.remitted.ID, 600, models.TimeSegmentActive)
		lf.adjustment(lf.remitted.ID, "100")

		for _, status := range []string{"REMITTED", "remitted", " Remitted "} {
			list, err := lf.svc.ListWorklogs(ctx, ListWorklogsParams{RemittanceStatus: status, Limit: 10})
			require.NoError(t, err)
			assert.Equal(t, int64(1), list.Count)
			require.Len(t, list.Data, 1)
			assert.Equal(t, lf.remitted.ID, list.Data[0].ID)
			assert.Equal(t, 20.0, list.Data[0].Amount)
			assert.Equal(t, StatusRemitted, list.Data[0].RemittanceStatus)
		}
	})

	t.Run("Unremitted filter reports live amounts", func(t *testing.T) {
		lf := newListFixture(t)

		list, err := lf.svc.ListWorklogs(ctx, ListWorklogsParams{RemittanceStatus: "unremitted", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), list.Count)
		assert.Equal(t, []uuid.UUID{lf.unremitted.ID, lf.orphan.ID}, viewIDs(list.Data))
		assert.Equal(t, 10.0, list.Data[0].Amount)

		lf.adjustment(lf.unremitted.ID, "-2.5")
		list, err = lf.svc.ListWorklogs(ctx, ListWorklogsParams{RemittanceStatus: "UNREMITTED", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 7.5, list.Data[0].Amount)
	})

	t.Run("Remitted filter with nothing remitted", func(t *testing.T) {
		f := newFixture(t)
		task := f.task("Build", "20")
		u := f.user(true)
		f.billableWorklog(u.ID, task, 60)
		svc := NewWorklogService(f.db)

		list, err := svc.ListWorklogs(ctx, ListWorklogsParams{RemittanceStatus: "REMITTED", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(0), list.Count)
		assert.Empty(t, list.Data)

		list, err = svc.ListWorklogs(ctx, ListWorklogsParams{RemittanceStatus: "UNREMITTED", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), list.Count)
	})

	t.Run("Skip and limit window over a stable order", func(t *testing.T) {
		f := newFixture(t)
		task := f.task("Build", "20")
		u := f.user(true)
		var all []uuid.UUID
		for i := 0; i < 7; i++ {
			all = append(all, f.billableWorklog(u.ID, task, 15*(i+1)).ID)
		}
		svc := NewWorklogService(f.db)

		for skip := 0; skip <= 9; skip++ {
			for limit := 1; limit <= 8; limit++ {
				list, err := svc.ListWorklogs(ctx, ListWorklogsParams{Skip: skip, Limit: limit})
				require.NoError(t, err)
				assert.Equal(t, int64(7), list.Count)

				want := limit
				if rest := 7 - skip; rest < want {
					want = rest
				}
				if want < 0 {
					want = 0
				}
				require.Len(t, list.Data, want, "skip=%d limit=%d", skip, limit)
				if want > 0 {
					assert.Equal(t, all[skip:skip+want], viewIDs(list.Data))
				}
			}
		}
	})

	t.Run("Invalid window", func(t *testing.T) {
		f := newFixture(t)
		svc := NewWorklogService(f.db)

		_, err := svc.ListWorklogs(ctx, ListWorklogsParams{Skip: -1, Limit: 10})
		assert.ErrorIs(t, err, types.ErrInvalidPagination)

		_, err = svc.ListWorklogs(ctx, ListWorklogsParams{Limit: 0})
		assert.ErrorIs(t, err, types.ErrInvalidPagination)
	})
}

func TestWorklogAmount(t *testing.T) {
	ctx := context.Background()
	lf := newListFixture(t)

	got, err := lf.svc.WorklogAmount(ctx, lf.unremitted.ID)
	require.NoError(t, err)
	assert.Equal(t, lf.unremitted.ID, got.ID)
	requireDecimal(t, "10", got.Amount)

	_, err = lf.svc.WorklogAmount(ctx, uuid.New())
	assert.ErrorIs(t, err, types.ErrNotFound)
}
