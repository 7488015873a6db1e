package user_test

import (
	"context"

	internalErrors "github.com/frahmantamala/user-management/internal"
	"github.com/frahmantamala/user-management/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Provisioning Policy", func() {
	var (
		resolver *MockLevelResolver
		policy   *user.ProvisioningPolicy
		ctx      context.Context
	)

	BeforeEach(func() {
		resolver = NewMockLevelResolver()
		policy = user.NewProvisioningPolicy(resolver)
		ctx = context.Background()
	})

	Context("for a non-administrator caller", func() {
		It("always resolves the Viewer baseline", func() {
			level, explicit, err := policy.DecideAssignedLevel(ctx, 0, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(level.Name).To(Equal("Viewer"))
			Expect(explicit).To(BeFalse())
		})

		It("silently ignores a requested level", func() {
			level, explicit, err := policy.DecideAssignedLevel(ctx, 1, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(level.Name).To(Equal("Viewer"))
			Expect(explicit).To(BeFalse())
		})
	})

	Context("for an administrator caller", func() {
		It("honors a requested non-default level", func() {
			level, explicit, err := policy.DecideAssignedLevel(ctx, 2, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(level.Name).To(Equal("Manager"))
			Expect(explicit).To(BeTrue())
		})

		It("treats an explicit Viewer request like the default path", func() {
			level, explicit, err := policy.DecideAssignedLevel(ctx, 4, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(level.Name).To(Equal("Viewer"))
			Expect(explicit).To(BeFalse())
		})

		It("fails with not-found for a nonexistent level", func() {
			_, _, err := policy.DecideAssignedLevel(ctx, 999, true)
			Expect(err).To(HaveOccurred())

			appErr, ok := internalErrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internalErrors.ErrCodeAccessLevelNotFound))
		})
	})

	Context("when the baseline row is missing", func() {
		BeforeEach(func() {
			resolver.RemoveLevel(4)
		})

		It("reports a configuration failure, not a user error", func() {
			_, _, err := policy.DecideAssignedLevel(ctx, 0, false)
			Expect(err).To(HaveOccurred())

			appErr, ok := internalErrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internalErrors.ErrCodeMissingBaselineLevel))
			Expect(appErr.Type).To(Equal(internalErrors.ErrorTypeConfig))
		})
	})
})
