package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = ginkgo.Describe("Password Hasher", func() {
	var hasher *PasswordHasher

	ginkgo.BeforeEach(func() {
		hasher = NewPasswordHasher(bcrypt.MinCost)
	})

	ginkgo.Describe("Hash", func() {
		ginkgo.It("produces a digest that verifies against the original password", func() {
			digest, err := hasher.Hash("s3cret-pass")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(digest).NotTo(gomega.BeEmpty())
			gomega.Expect(hasher.Verify("s3cret-pass", digest)).To(gomega.BeTrue())
		})

		ginkgo.It("salts every digest so two hashes of the same password differ", func() {
			first, err := hasher.Hash("same-password")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			second, err := hasher.Hash("same-password")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(first).NotTo(gomega.Equal(second))
		})

		ginkgo.It("refuses an empty password", func() {
			_, err := hasher.Hash("")
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("Verify", func() {
		ginkgo.It("rejects the wrong password", func() {
			digest, err := hasher.Hash("right-password")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(hasher.Verify("wrong-password", digest)).To(gomega.BeFalse())
		})

		ginkgo.It("rejects empty inputs", func() {
			digest, err := hasher.Hash("some-password")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(hasher.Verify("", digest)).To(gomega.BeFalse())
			gomega.Expect(hasher.Verify("some-password", "")).To(gomega.BeFalse())
		})

		ginkgo.It("rejects a malformed digest instead of erroring", func() {
			gomega.Expect(hasher.Verify("some-password", "not-a-bcrypt-digest")).To(gomega.BeFalse())
		})
	})
})
