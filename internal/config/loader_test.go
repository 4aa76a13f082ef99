package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/trademarks/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		setCredentials()
		defer clearConfigEnvVars()

		Convey("When loading config with defaults and credentials only", func() {
			cfg, err := config.Load(ctx)

			Convey("Then it should load successfully with defaults", func() {
				So(err, ShouldBeNil)
				So(cfg, ShouldNotBeNil)
				So(cfg.Addr, ShouldEqual, ":8000")
				So(cfg.RegistryBaseURL, ShouldEqual, config.DefaultRegistryBaseURL)
				So(cfg.RegistryAPIKey, ShouldEqual, "env-key")
				So(cfg.RegistryAPISecret, ShouldEqual, "env-secret")
			})
		})

		Convey("When loading config with environment variables", func() {
			_ = os.Setenv("TRADEMARKS_ADDR", ":8080")
			_ = os.Setenv("TRADEMARKS_LOG_LEVEL", "debug")
			_ = os.Setenv("TRADEMARKS_REGISTRY_BASE_URL", "http://localhost:9999/api")
			_ = os.Setenv("TRADEMARKS_DATABASE_URL", "postgres://localhost/trademarks")

			cfg, err := config.Load(ctx)

			Convey("Then it should override defaults with env vars", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8080")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.RegistryBaseURL, ShouldEqual, "http://localhost:9999/api")
				So(cfg.DatabaseURL, ShouldEqual, "postgres://localhost/trademarks")
			})
		})

		Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
log_format: json
registry_base_url: "https://registry.example/v2"
registry_api_key: file-key
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Unsetenv("TRADEMARKS_REGISTRY_API_KEY")
			_ = os.Setenv("TRADEMARKS_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			Convey("Then it should load from YAML file", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9090")
				So(cfg.LogFormat, ShouldEqual, "json")
				So(cfg.RegistryBaseURL, ShouldEqual, "https://registry.example/v2")
				So(cfg.RegistryAPIKey, ShouldEqual, "file-key")
				So(cfg.RegistryAPISecret, ShouldEqual, "env-secret")
				So(cfg.LogLevel, ShouldEqual, "info") // From defaults
			})
		})

		Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
registry_api_key: file-key
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("TRADEMARKS_CONFIG", tmpFile)
			_ = os.Setenv("TRADEMARKS_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			Convey("Then environment variables should override file values", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8080")
				So(cfg.RegistryAPIKey, ShouldEqual, "env-key")
			})
		})

		Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("TRADEMARKS_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			Convey("Then it should return a load error", func() {
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
				So(cfg, ShouldBeNil)
			})
		})

		Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("TRADEMARKS_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			Convey("Then it should return an error", func() {
				So(err, ShouldNotBeNil)
				So(cfg, ShouldBeNil)
			})
		})

		Convey("When loading config with empty addr", func() {
			_ = os.Setenv("TRADEMARKS_ADDR", "")

			cfg, err := config.Load(ctx)

			Convey("Then it should return a validation error", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "addr must not be empty")
				So(cfg, ShouldBeNil)
			})
		})

		Convey("When credentials are missing", func() {
			_ = os.Unsetenv("TRADEMARKS_REGISTRY_API_SECRET")

			cfg, err := config.Load(ctx)

			Convey("Then it should refuse to start", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "registry_api_secret")
				So(cfg, ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func setCredentials() {
	_ = os.Setenv("TRADEMARKS_REGISTRY_API_KEY", "env-key")
	_ = os.Setenv("TRADEMARKS_REGISTRY_API_SECRET", "env-secret")
}

func clearConfigEnvVars() {
	envVars := []string{
		"TRADEMARKS_CONFIG",
		"TRADEMARKS_ADDR",
		"TRADEMARKS_LOG_LEVEL",
		"TRADEMARKS_LOG_FORMAT",
		"TRADEMARKS_REGISTRY_BASE_URL",
		"TRADEMARKS_REGISTRY_API_KEY",
		"TRADEMARKS_REGISTRY_API_SECRET",
		"TRADEMARKS_DATABASE_URL",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "trademarks-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
