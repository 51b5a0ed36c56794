package internal_test

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timesheet-tracker/internal"
)

var _ = Describe("Config", func() {
	validConfig := func() *internal.Config {
		return &internal.Config{
			Server: internal.ServerConfig{
				Port:              8080,
				AllowedOrigins:    "http://localhost:3000, http://localhost:5173",
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       15 * time.Second,
			},
			Database: internal.DatabaseConfig{
				MaxOpenConns: 10,
				MaxIdleConns: 5,
				Source:       "postgres://localhost/timesheets",
			},
			Security: internal.SecurityConfig{
				JWTSecret:           "0123456789abcdef0123456789abcdef",
				AccessTokenDuration: 30 * time.Minute,
				BCryptCost:          12,
			},
			Observability: internal.ObservabilityConfig{
				Logging: internal.LoggingConfig{Level: "info", Format: "json"},
			},
		}
	}

	It("accepts a complete configuration", func() {
		Expect(validConfig().Validate()).To(Succeed())
	})

	It("splits and trims allowed origins", func() {
		Expect(validConfig().Server.Origins()).To(Equal([]string{"http://localhost:3000", "http://localhost:5173"}))
	})

	It("reports every broken section at once", func() {
		cfg := validConfig()
		cfg.Server.Port = 0
		cfg.Security.JWTSecret = "short"
		cfg.Observability.Logging.Format = "xml"

		err := cfg.Validate()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("server config"))
		Expect(err.Error()).To(ContainSubstring("security config"))
		Expect(err.Error()).To(ContainSubstring("logging config"))
		Expect(err.Error()).NotTo(ContainSubstring("database config"))
	})

	It("rejects more idle than open connections", func() {
		cfg := validConfig()
		cfg.Database.MaxIdleConns = 20
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("max_idle_conns")))
	})

	It("rejects an out of range bcrypt cost", func() {
		cfg := validConfig()
		cfg.Security.BCryptCost = 20
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("bcrypt_cost")))
	})

	Describe("LoadConfigFromEnv", func() {
		var saved map[string]string

		set := func(key, value string) {
			if _, ok := saved[key]; !ok {
				saved[key] = os.Getenv(key)
			}
			Expect(os.Setenv(key, value)).To(Succeed())
		}

		BeforeEach(func() {
			saved = map[string]string{}
		})

		AfterEach(func() {
			for k, v := range saved {
				if v == "" {
					_ = os.Unsetenv(k)
				} else {
					_ = os.Setenv(k, v)
				}
			}
		})

		It("reads overrides and falls back to defaults", func() {
			set("HTTP_PORT", "9090")
			set("DATABASE_URL", "postgres://db/timesheets")
			set("JWT_SECRET", "0123456789abcdef0123456789abcdef")
			set("ACCESS_TOKEN_DURATION", "45m")
			set("BCRYPT_COST", "not-a-number")

			cfg := internal.LoadConfigFromEnv()
			Expect(cfg.Server.Port).To(Equal(9090))
			Expect(cfg.Database.GetDSN()).To(Equal("postgres://db/timesheets"))
			Expect(cfg.Security.AccessTokenDuration).To(Equal(45 * time.Minute))
			Expect(cfg.Security.BCryptCost).To(Equal(12))
			Expect(cfg.Validate()).To(Succeed())
		})
	})
})
