package status_test

import (
	"wrench/domain/status"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Status", func() {
	Describe("IsValid", func() {
		It("should accept every declared status and nothing else", func() {
			for _, s := range status.All {
				Expect(s.IsValid()).To(BeTrue())
			}
			Expect(status.Status("").IsValid()).To(BeFalse())
			Expect(status.Status("Open").IsValid()).To(BeFalse())
			Expect(status.Status("pending").IsValid()).To(BeFalse())
		})
	})

	Describe("IsTerminal", func() {
		It("should mark only Completed and Cancelled as terminal", func() {
			Expect(status.Pending.IsTerminal()).To(BeFalse())
			Expect(status.Received.IsTerminal()).To(BeFalse())
			Expect(status.InMaintenance.IsTerminal()).To(BeFalse())
			Expect(status.Completed.IsTerminal()).To(BeTrue())
			Expect(status.Cancelled.IsTerminal()).To(BeTrue())
		})
	})

	Describe("CanTransition", func() {
		Context("with active statuses", func() {
			It("should allow free movement among active statuses and into Completed", func() {
				Ω(status.CanTransition(status.Pending, status.Received)).Should(BeTrue())
				Ω(status.CanTransition(status.Pending, status.InMaintenance)).Should(BeTrue())
				Ω(status.CanTransition(status.Pending, status.Completed)).Should(BeTrue())
				Ω(status.CanTransition(status.Received, status.Pending)).Should(BeTrue())
				Ω(status.CanTransition(status.Received, status.InMaintenance)).Should(BeTrue())
				Ω(status.CanTransition(status.Received, status.Completed)).Should(BeTrue())
				Ω(status.CanTransition(status.InMaintenance, status.Pending)).Should(BeTrue())
				Ω(status.CanTransition(status.InMaintenance, status.Received)).Should(BeTrue())
				Ω(status.CanTransition(status.InMaintenance, status.Completed)).Should(BeTrue())
			})

			It("should never allow a direct move into Cancelled", func() {
				for _, s := range status.All {
					Ω(status.CanTransition(s, status.Cancelled)).Should(BeFalse())
				}
			})

			It("should never allow a self transition", func() {
				for _, s := range status.All {
					Ω(status.CanTransition(s, s)).Should(BeFalse())
				}
			})
		})

		Context("with terminal statuses", func() {
			It("should allow nothing out of Completed or Cancelled", func() {
				for _, to := range status.All {
					Ω(status.CanTransition(status.Completed, to)).Should(BeFalse())
					Ω(status.CanTransition(status.Cancelled, to)).Should(BeFalse())
				}
			})
		})
	})

	Describe("AvailableTransitions", func() {
		It("should return the reachable statuses in declaration order", func() {
			Ω(status.AvailableTransitions(status.Pending)).Should(Equal(
				[]status.Status{status.Received, status.InMaintenance, status.Completed}))
			Ω(status.AvailableTransitions(status.Completed)).Should(Equal([]status.Status{}))
			Ω(status.AvailableTransitions(status.Status("UNKNOWN"))).Should(Equal([]status.Status{}))
		})
	})
})
