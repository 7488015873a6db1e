package accesslevel_test

import (
	"github.com/frahmantamala/user-management/internal/accesslevel"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Level Hierarchy", func() {
	Describe("Satisfies", func() {
		It("lets Administrator satisfy every level", func() {
			Expect(accesslevel.Administrator.Satisfies(accesslevel.Administrator)).To(BeTrue())
			Expect(accesslevel.Administrator.Satisfies(accesslevel.Manager)).To(BeTrue())
			Expect(accesslevel.Administrator.Satisfies(accesslevel.CommonUser)).To(BeTrue())
			Expect(accesslevel.Administrator.Satisfies(accesslevel.Viewer)).To(BeTrue())
		})

		It("lets Manager satisfy Manager and below only", func() {
			Expect(accesslevel.Manager.Satisfies(accesslevel.Administrator)).To(BeFalse())
			Expect(accesslevel.Manager.Satisfies(accesslevel.Manager)).To(BeTrue())
			Expect(accesslevel.Manager.Satisfies(accesslevel.CommonUser)).To(BeTrue())
			Expect(accesslevel.Manager.Satisfies(accesslevel.Viewer)).To(BeTrue())
		})

		It("lets CommonUser satisfy CommonUser and Viewer only", func() {
			Expect(accesslevel.CommonUser.Satisfies(accesslevel.Administrator)).To(BeFalse())
			Expect(accesslevel.CommonUser.Satisfies(accesslevel.Manager)).To(BeFalse())
			Expect(accesslevel.CommonUser.Satisfies(accesslevel.CommonUser)).To(BeTrue())
			Expect(accesslevel.CommonUser.Satisfies(accesslevel.Viewer)).To(BeTrue())
		})

		It("lets Viewer satisfy only Viewer", func() {
			Expect(accesslevel.Viewer.Satisfies(accesslevel.Administrator)).To(BeFalse())
			Expect(accesslevel.Viewer.Satisfies(accesslevel.Manager)).To(BeFalse())
			Expect(accesslevel.Viewer.Satisfies(accesslevel.CommonUser)).To(BeFalse())
			Expect(accesslevel.Viewer.Satisfies(accesslevel.Viewer)).To(BeTrue())
		})
	})

	Describe("Rank", func() {
		It("orders levels by privilege, lower rank first", func() {
			Expect(accesslevel.Administrator.Rank()).To(Equal(1))
			Expect(accesslevel.Manager.Rank()).To(Equal(2))
			Expect(accesslevel.CommonUser.Rank()).To(Equal(3))
			Expect(accesslevel.Viewer.Rank()).To(Equal(4))
		})
	})

	Describe("LevelFromName", func() {
		It("resolves the canonical names", func() {
			for name, expected := range map[string]accesslevel.Level{
				"Administrator": accesslevel.Administrator,
				"Manager":       accesslevel.Manager,
				"CommonUser":    accesslevel.CommonUser,
				"Viewer":        accesslevel.Viewer,
			} {
				level, ok := accesslevel.LevelFromName(name)
				Expect(ok).To(BeTrue(), "expected %s to resolve", name)
				Expect(level).To(Equal(expected))
			}
		})

		It("accepts the legacy label for CommonUser", func() {
			level, ok := accesslevel.LevelFromName("User")
			Expect(ok).To(BeTrue())
			Expect(level).To(Equal(accesslevel.CommonUser))
		})

		It("rejects unknown labels without error", func() {
			for _, name := range []string{"", "SuperUser", "administrator", "ADMIN", "viewer "} {
				_, ok := accesslevel.LevelFromName(name)
				Expect(ok).To(BeFalse(), "expected %q not to resolve", name)
			}
		})
	})

	Describe("LevelFromID", func() {
		It("maps seeded ids to levels", func() {
			level, ok := accesslevel.LevelFromID(1)
			Expect(ok).To(BeTrue())
			Expect(level).To(Equal(accesslevel.Administrator))

			level, ok = accesslevel.LevelFromID(4)
			Expect(ok).To(BeTrue())
			Expect(level).To(Equal(accesslevel.Viewer))
		})

		It("rejects ids outside the hierarchy", func() {
			for _, id := range []int64{0, -1, 5, 999} {
				_, ok := accesslevel.LevelFromID(id)
				Expect(ok).To(BeFalse())
			}
		})
	})

	Describe("String", func() {
		It("names mapped levels and falls back for unmapped values", func() {
			Expect(accesslevel.Manager.String()).To(Equal("Manager"))
			Expect(accesslevel.Level(42).String()).To(Equal("Unknown"))
		})
	})

	Describe("DefaultLevelID", func() {
		It("is the Viewer baseline", func() {
			Expect(accesslevel.DefaultLevelID).To(Equal(int64(accesslevel.Viewer)))
		})
	})
})
