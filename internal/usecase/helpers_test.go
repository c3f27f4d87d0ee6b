package usecase

import (
	"time"

	"github.com/runoshun/ironjira/internal/testutil"
)

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestRepo() *testutil.MockSnapshotRepository {
	return testutil.NewMockSnapshotRepository(&testutil.MockClock{NowTime: testNow})
}

func strPtr(s string) *string {
	return &s
}
