package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Project               string
	CatalogPath           string
	FlatCatalogPath       string
	TranslatedCatalogPath string
	DictionaryPath        string
	BackupSuffix          string
	ExcludeDirs           []string
	BoilerplateRatio      float64
	MinDictKeyRunes       int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		Project:               getEnv("PROJECT_NAME", "healthcare-web"),
		CatalogPath:           getEnv("CATALOG_PATH", "i18n_catalog.json"),
		FlatCatalogPath:       getEnv("FLAT_CATALOG_PATH", "i18n_catalog_flat.json"),
		TranslatedCatalogPath: getEnv("TRANSLATED_CATALOG_PATH", "i18n_catalog_en.json"),
		DictionaryPath:        getEnv("DICTIONARY_PATH", "dictionaries/ko-en.json"),
		BackupSuffix:          getEnv("BACKUP_SUFFIX", ".backup"),
		ExcludeDirs:           getEnvList("EXCLUDE_DIRS", "wp-includes,wp-admin,node_modules,.git"),
		BoilerplateRatio:      getEnvFloat("BOILERPLATE_RATIO", 0.8),
		MinDictKeyRunes:       getEnvInt("MIN_DICT_KEY_RUNES", 2),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvList(key, fallback string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
