package sla_test

import (
	"testing"
	"time"

	"wrench/domain/sla"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func TestHoursBetween(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should round to two decimal places", func(t *testing.T) {
		from := types.TimestampOfDate(2021, 1, 1, 8, 0, 0, 0, time.Local)

		Expect(sla.HoursBetween(from, types.TimestampOfDate(2021, 1, 1, 9, 0, 0, 0, time.Local))).To(Equal(1.0))
		Expect(sla.HoursBetween(from, types.TimestampOfDate(2021, 1, 1, 9, 30, 0, 0, time.Local))).To(Equal(1.5))
		// 10 minutes is 0.1666... hours
		Expect(sla.HoursBetween(from, types.TimestampOfDate(2021, 1, 1, 8, 10, 0, 0, time.Local))).To(Equal(0.17))
		Expect(sla.HoursBetween(from, from)).To(Equal(0.0))
	})

	t.Run("should clamp negative differences to zero", func(t *testing.T) {
		from := types.TimestampOfDate(2021, 1, 1, 8, 0, 0, 0, time.Local)
		to := types.TimestampOfDate(2021, 1, 1, 7, 0, 0, 0, time.Local)
		Expect(sla.HoursBetween(from, to)).To(Equal(0.0))
	})
}

func TestResponseHours(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should measure from opening until the first response", func(t *testing.T) {
		openedAt := types.TimestampOfDate(2021, 3, 1, 8, 0, 0, 0, time.Local)
		respondedAt := types.TimestampOfDate(2021, 3, 1, 10, 30, 0, 0, time.Local)
		Expect(sla.ResponseHours(openedAt, respondedAt)).To(Equal(2.5))
	})
}

func TestPendingResponseHours(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should measure against the current clock", func(t *testing.T) {
		defer func() {
			sla.NowFunc = types.CurrentTimestamp
		}()
		sla.NowFunc = func() types.Timestamp {
			return types.TimestampOfDate(2021, 3, 1, 12, 0, 0, 0, time.Local)
		}

		openedAt := types.TimestampOfDate(2021, 3, 1, 8, 0, 0, 0, time.Local)
		Expect(sla.PendingResponseHours(openedAt)).To(Equal(4.0))
	})
}

func TestRepairHours(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should be downtime minus response, not resolved minus responded", func(t *testing.T) {
		openedAt := types.TimestampOfDate(2021, 3, 1, 8, 0, 0, 0, time.Local)
		respondedAt := types.TimestampOfDate(2021, 3, 1, 9, 0, 0, 0, time.Local)
		resolvedAt := types.TimestampOfDate(2021, 3, 1, 14, 30, 0, 0, time.Local)

		downtime := sla.DowntimeHours(openedAt, resolvedAt)
		response := sla.ResponseHours(openedAt, respondedAt)
		Expect(downtime).To(Equal(6.5))
		Expect(response).To(Equal(1.0))
		Expect(sla.RepairHours(downtime, response)).To(Equal(5.5))
	})

	t.Run("should floor at zero when response already exceeds downtime", func(t *testing.T) {
		Expect(sla.RepairHours(1.0, 2.5)).To(Equal(0.0))
		Expect(sla.RepairHours(0, 0)).To(Equal(0.0))
	})
}

func TestRound2(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should keep two decimal places", func(t *testing.T) {
		Expect(sla.Round2(3.14159)).To(Equal(3.14))
		Expect(sla.Round2(3.146)).To(Equal(3.15))
		Expect(sla.Round2(10.0)).To(Equal(10.0))
	})
}
