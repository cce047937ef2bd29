package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadSociety reads the society policy file (YAML) and overlays it on the
// built-in defaults. Path resolution order: the explicit path argument, the
// SOCIETY_CONFIG env var, then ./society.yaml and ./configs/society.yaml. A
// missing file is not an error, defaults apply.
func LoadSociety(path string) (SocietyConfig, error) {
	// .env is optional and only consulted for local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")

	switch {
	case path != "":
		v.SetConfigFile(path)
	case os.Getenv("SOCIETY_CONFIG") != "":
		v.SetConfigFile(os.Getenv("SOCIETY_CONFIG"))
	default:
		v.SetConfigName("society")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	cfg := DefaultSocietyConfig()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return SocietyConfig{}, fmt.Errorf("read society config: %w", err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return SocietyConfig{}, fmt.Errorf("unmarshal society config: %w", err)
	}

	if err := validateSociety(cfg); err != nil {
		return SocietyConfig{}, fmt.Errorf("invalid society config: %w", err)
	}

	return cfg, nil
}

func validateSociety(cfg SocietyConfig) error {
	if cfg.Loan.MinAmount <= 0 || cfg.Loan.MaxAmount < cfg.Loan.MinAmount {
		return fmt.Errorf("loan amount limits out of order: min=%d max=%d",
			cfg.Loan.MinAmount, cfg.Loan.MaxAmount)
	}
	if cfg.Loan.Interest.DefaultRate < 0 {
		return fmt.Errorf("negative default interest rate")
	}
	if cfg.Loan.EMI.DefaultDueDay < 1 || cfg.Loan.EMI.DefaultDueDay > 28 {
		return fmt.Errorf("default due day must be within 1..28, got %d", cfg.Loan.EMI.DefaultDueDay)
	}
	if cfg.Fees.LateFee.Value < 0 {
		return fmt.Errorf("negative late fee")
	}
	return nil
}
