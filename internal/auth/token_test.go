package auth

import (
	"time"

	"github.com/frahmantamala/user-management/internal"
	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Session Token Issuer", func() {
	var (
		issuer *SessionTokenIssuer
		cfg    internal.SecurityConfig
	)

	ginkgo.BeforeEach(func() {
		cfg = internal.SecurityConfig{
			JWTSecret:     "test-secret-test-secret-test-secret!",
			JWTIssuer:     "user-management-test",
			JWTAudience:   "user-management-test-api",
			TokenDuration: 8 * time.Hour,
		}

		var err error
		issuer, err = NewSessionTokenIssuer(cfg)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
	})

	ginkgo.Describe("NewSessionTokenIssuer", func() {
		ginkgo.It("refuses to start without a secret", func() {
			_, err := NewSessionTokenIssuer(internal.SecurityConfig{})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("falls back to the eight hour window when no duration is set", func() {
			shortCfg := cfg
			shortCfg.TokenDuration = 0
			fallbackIssuer, err := NewSessionTokenIssuer(shortCfg)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, expiresAt, err := fallbackIssuer.Issue(TokenSubject{UserID: 1})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(expiresAt).To(gomega.BeTemporally("~", time.Now().Add(8*time.Hour), time.Minute))
		})
	})

	ginkgo.Describe("Issue", func() {
		ginkgo.It("embeds subject, issuer, audience and lifetime", func() {
			tokenString, expiresAt, err := issuer.Issue(TokenSubject{
				UserID:    42,
				Name:      "Someone",
				Email:     "someone@example.com",
				RoleNames: []string{"Manager"},
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			claims, err := issuer.Validate(tokenString)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(claims.Subject).To(gomega.Equal("42"))
			gomega.Expect(claims.Name).To(gomega.Equal("Someone"))
			gomega.Expect(claims.Email).To(gomega.Equal("someone@example.com"))
			gomega.Expect(claims.Issuer).To(gomega.Equal("user-management-test"))
			gomega.Expect(claims.Audience).To(gomega.ContainElement("user-management-test-api"))
			gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally("~", expiresAt, time.Second))
			gomega.Expect(claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)).To(gomega.Equal(8 * time.Hour))
		})

		ginkgo.It("uses the first active level name as the role claim", func() {
			tokenString, _, err := issuer.Issue(TokenSubject{
				UserID:    1,
				RoleNames: []string{"Manager", "Viewer"},
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			claims, err := issuer.Validate(tokenString)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(claims.Role).To(gomega.Equal("Manager"))
			gomega.Expect(claims.RoleClaims()).To(gomega.Equal([]string{"Manager"}))
		})

		ginkgo.It("omits the role claim entirely when no level is active", func() {
			tokenString, _, err := issuer.Issue(TokenSubject{UserID: 1})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			claims, err := issuer.Validate(tokenString)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(claims.Role).To(gomega.BeEmpty())
			gomega.Expect(claims.RoleClaims()).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("Validate", func() {
		ginkgo.It("rejects a token signed with a different secret", func() {
			otherCfg := cfg
			otherCfg.JWTSecret = "another-secret-another-secret-etc!!!"
			otherIssuer, err := NewSessionTokenIssuer(otherCfg)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			tokenString, _, err := otherIssuer.Issue(TokenSubject{UserID: 1})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = issuer.Validate(tokenString)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})

		ginkgo.It("rejects a token from a different issuer", func() {
			otherCfg := cfg
			otherCfg.JWTIssuer = "someone-else"
			otherIssuer, err := NewSessionTokenIssuer(otherCfg)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			tokenString, _, err := otherIssuer.Issue(TokenSubject{UserID: 1})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = issuer.Validate(tokenString)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})

		ginkgo.It("maps an expired token to the dedicated error", func() {
			now := time.Now()
			claims := &Claims{
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   "1",
					Issuer:    cfg.JWTIssuer,
					Audience:  jwt.ClaimStrings{cfg.JWTAudience},
					IssuedAt:  jwt.NewNumericDate(now.Add(-9 * time.Hour)),
					ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
				},
			}
			expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = issuer.Validate(expired)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrTokenExpired))
		})

		ginkgo.It("rejects the none algorithm", func() {
			claims := &Claims{
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   "1",
					Issuer:    cfg.JWTIssuer,
					Audience:  jwt.ClaimStrings{cfg.JWTAudience},
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}
			unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = issuer.Validate(unsigned)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})

		ginkgo.It("rejects garbage input", func() {
			_, err := issuer.Validate("not.a.token")
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})
	})

	ginkgo.Describe("Claims.UserID", func() {
		ginkgo.It("fails on a non-numeric subject", func() {
			claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-number"}}
			_, err := claims.UserID()
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})
})
