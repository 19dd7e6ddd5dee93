package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application settings, loaded once at startup from
// environment variables and passed explicitly to every component.
type Config struct {
	// Scan universe
	Assets    []string
	Intervals []string

	// Snapshot
	SnapshotLimit int
	MinBars       int

	// Scheduling
	CycleInterval  time.Duration
	MaxConcurrency int
	PerAssetJitter time.Duration

	// Decision
	ConfidenceThreshold float64
	MessageCooldown     time.Duration
	StatePath           string

	// Indicator periods
	EMAFast    int
	EMASlow    int
	EMATrend   int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	RSIPeriod  int
	STPeriod   int
	STMult     float64
	OBVBars    int

	// Targets
	TP1Pct float64
	TP2Pct float64
	TP3Pct float64
	SLPct  float64

	// External services
	BinanceBaseURL          string
	DiscordWebhookURL       string
	DiscordPremiumWebhook   string
	PremiumConfidence       float64
	VerboseDiscord          bool
	DatabaseURL             string
	FirebaseCredentialsPath string
	FirebaseCredentialsJSON string
	HTTPAddr                string
}

// Load reads configuration from environment variables with the standard
// defaults (4h/1h/15m/5m timeframes, 80-bar minimum, 15-minute cycles).
func Load() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Assets:    upper(getList("ASSETS", "BTCUSDT,ETHUSDT,SOLUSDT,BNBUSDT,LINKUSDT")),
		Intervals: getList("INTERVALS", "4h,1h,15m,5m"),

		SnapshotLimit: getInt("SNAPSHOT_LIMIT", 500),
		MinBars:       getInt("MIN_BARS", 80),

		CycleInterval:  getSeconds("INTERVAL_SECONDS", 900),
		MaxConcurrency: getInt("MAX_CONCURRENCY", 3),
		PerAssetJitter: getMillis("PER_ASSET_JITTER_MS", 600),

		ConfidenceThreshold: getFloat("CONFIDENCE_THRESHOLD", 0.60),
		MessageCooldown:     getSeconds("MESSAGE_COOLDOWN_SECONDS", 300),
		StatePath:           getEnv("STATE_PATH", home+"/.sentinel_state.json"),

		EMAFast:    getInt("EMA_FAST", 20),
		EMASlow:    getInt("EMA_SLOW", 50),
		EMATrend:   getInt("EMA_TREND", 200),
		MACDFast:   getInt("MACD_FAST", 12),
		MACDSlow:   getInt("MACD_SLOW", 26),
		MACDSignal: getInt("MACD_SIGNAL", 9),
		RSIPeriod:  getInt("RSI_PERIOD", 14),
		STPeriod:   getInt("ST_PERIOD", 10),
		STMult:     getFloat("ST_MULT", 3.0),
		OBVBars:    getInt("OBV_SLOPE_BARS", 15),

		TP1Pct: getFloat("TP1_PCT", 0.006),
		TP2Pct: getFloat("TP2_PCT", 0.012),
		TP3Pct: getFloat("TP3_PCT", 0.018),
		SLPct:  getFloat("SL_PCT", 0.0035),

		BinanceBaseURL:          getEnv("BINANCE_BASE_URL", ""),
		DiscordWebhookURL:       getEnv("DISCORD_WEBHOOK_URL", ""),
		DiscordPremiumWebhook:   getEnv("DISCORD_PREMIUM_WEBHOOK_URL", ""),
		PremiumConfidence:       getFloat("PREMIUM_CONFIDENCE_THRESHOLD", 0.80),
		VerboseDiscord:          getBool("VERBOSE_DISCORD", false),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		FirebaseCredentialsJSON: getEnv("FIREBASE_CREDENTIALS_JSON", ""),
		HTTPAddr:                getEnv("HTTP_ADDR", ":8080"),
	}
}

// TacticalInterval is the fastest timeframe, used by the tactical scorer.
// Intervals are ordered macro to tactical, so it is the last one.
func (c *Config) TacticalInterval() string {
	if len(c.Intervals) == 0 {
		return "5m"
	}
	return c.Intervals[len(c.Intervals)-1]
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func upper(list []string) []string {
	for i, s := range list {
		list[i] = strings.ToUpper(s)
	}
	return list
}

func getInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func getSeconds(key string, fallback int) time.Duration {
	return time.Duration(getInt(key, fallback)) * time.Second
}

func getMillis(key string, fallback int) time.Duration {
	return time.Duration(getInt(key, fallback)) * time.Millisecond
}
