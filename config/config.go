package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath            = "."
	defaultSaveTimeout     = 10 * time.Second
	defaultOrderNumDigits  = 8
	defaultNumberAttempts  = 5
	defaultAdminTokenTTL   = 2 * time.Hour
	defaultQRCodeSize      = 256
	defaultQRCodeLevel     = "M"
	defaultCollectionScope = "store_v1"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Firestore is the backing document store holding the products, orders
	// and reviews collections.
	Firestore *FirestoreConfig `json:"firestore" yaml:"firestore"`

	// Admin configures the shared-credential admin console access.
	Admin *AdminConfig `json:"admin" yaml:"admin"`

	// Checkout configures order placement behaviour.
	Checkout *CheckoutConfig `json:"checkout" yaml:"checkout"`

	// Contact configures the operator chat handoff used for payment confirmation.
	Contact *ContactConfig `json:"contact" yaml:"contact"`

	// PubSub configures order-event publishing for operator alerts.
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Messaging configures FCM pushes sent to operator devices on new orders.
	Messaging *MessagingConfig `json:"messaging" yaml:"messaging"`

	// QRCode configures the payment-handoff QR code generation.
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// Blob configures the bucket backing product image uploads.
	Blob *BlobConfig `json:"blob" yaml:"blob"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// FirestoreConfig identifies the Firestore project and the logical namespace
// (collection prefix) selecting which deployment's data to use.
type FirestoreConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
	CollectionScope string `json:"collectionScope" yaml:"collectionScope"`
}

// AdminConfig holds the bcrypt hash of the admin password and the secret used
// to sign admin session tokens. The plaintext password never appears in config.
type AdminConfig struct {
	PasswordHash string        `json:"passwordHash" yaml:"passwordHash"`
	TokenSecret  string        `json:"tokenSecret" yaml:"tokenSecret"`
	TokenTTL     time.Duration `json:"tokenTtl" yaml:"tokenTtl"`
}

// CheckoutConfig tunes order placement.
type CheckoutConfig struct {
	// OrderNumberDigits is the length of the human-facing order number.
	OrderNumberDigits int `json:"orderNumberDigits" yaml:"orderNumberDigits"`

	// NumberAttempts bounds the regeneration loop when a generated order
	// number collides with an existing order.
	NumberAttempts int `json:"numberAttempts" yaml:"numberAttempts"`

	// SaveTimeout bounds admin save operations and checkout submission.
	SaveTimeout time.Duration `json:"saveTimeout" yaml:"saveTimeout"`
}

// ContactConfig identifies the operator chat used for the payment handoff link.
type ContactConfig struct {
	// OperatorChatID is the phone number or chat handle the confirmation
	// message is addressed to, e.g. a wa.me number.
	OperatorChatID string `json:"operatorChatId" yaml:"operatorChatId"`
}

// PubSubConfig defines order-event publishing configuration.
type PubSubConfig struct {
	// Provider type: "local" for local HTTP push or "google" for Google Pub/Sub.
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider).
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider).
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider).
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// MessagingConfig defines FCM configuration for operator new-order alerts.
type MessagingConfig struct {
	CredentialsPath string   `json:"credentialsPath" yaml:"credentialsPath"`
	OperatorTokens  []string `json:"operatorTokens" yaml:"operatorTokens"`
}

// QRCodeConfig defines QR code generation configuration.
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// BlobConfig defines the bucket backing product image uploads.
type BlobConfig struct {
	// BucketURL is a gocloud bucket URL, e.g. "file:///var/store/images" or
	// "gs://store-images".
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`

	// PublicBaseURL is the URL prefix under which stored objects are served.
	PublicBaseURL string `json:"publicBaseUrl" yaml:"publicBaseUrl"`
}

// LoadWithEnv loads .yaml files through koanf, overlaying environment variables.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: FIRESTORE_PROJECTID -> firestore.projectId (not firestore.projectid)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Firestore == nil {
		cfg.Firestore = &FirestoreConfig{}
	}
	if strings.TrimSpace(cfg.Firestore.CollectionScope) == "" {
		cfg.Firestore.CollectionScope = defaultCollectionScope
	}

	if cfg.Checkout == nil {
		cfg.Checkout = &CheckoutConfig{}
	}
	if cfg.Checkout.OrderNumberDigits <= 0 {
		cfg.Checkout.OrderNumberDigits = defaultOrderNumDigits
	}
	if cfg.Checkout.NumberAttempts <= 0 {
		cfg.Checkout.NumberAttempts = defaultNumberAttempts
	}
	if cfg.Checkout.SaveTimeout <= 0 {
		cfg.Checkout.SaveTimeout = defaultSaveTimeout
	}

	if cfg.Admin != nil && cfg.Admin.TokenTTL <= 0 {
		cfg.Admin.TokenTTL = defaultAdminTokenTTL
	}

	if cfg.QRCode == nil {
		cfg.QRCode = &QRCodeConfig{
			Size:                 defaultQRCodeSize,
			ErrorCorrectionLevel: defaultQRCodeLevel,
		}
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
