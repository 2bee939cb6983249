package status_test

import (
	"wrench/domain/status"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Priority", func() {
	It("should accept the four declared priorities and nothing else", func() {
		Expect(status.PriorityLow.IsValid()).To(BeTrue())
		Expect(status.PriorityMedium.IsValid()).To(BeTrue())
		Expect(status.PriorityHigh.IsValid()).To(BeTrue())
		Expect(status.PriorityCritical.IsValid()).To(BeTrue())

		Expect(status.Priority("").IsValid()).To(BeFalse())
		Expect(status.Priority("Urgent").IsValid()).To(BeFalse())
		Expect(status.Priority("low").IsValid()).To(BeFalse())
	})
})
