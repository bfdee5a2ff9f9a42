package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"firestore": map[string]any{
			"projectId":       "",
			"collectionScope": "store_v1",
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"admin": map[string]any{
			"passwordHash": "",
			"tokenSecret":  "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "FIRESTORE_PROJECTID", want: "firestore.projectId"},
		{envKey: "FIRESTORE_COLLECTIONSCOPE", want: "firestore.collectionScope"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "ADMIN_PASSWORDHASH", want: "admin.passwordHash"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.Checkout.OrderNumberDigits != defaultOrderNumDigits {
		t.Fatalf("OrderNumberDigits = %d, want %d", cfg.Checkout.OrderNumberDigits, defaultOrderNumDigits)
	}
	if cfg.Checkout.SaveTimeout != defaultSaveTimeout {
		t.Fatalf("SaveTimeout = %s, want %s", cfg.Checkout.SaveTimeout, defaultSaveTimeout)
	}
	if cfg.Firestore.CollectionScope != defaultCollectionScope {
		t.Fatalf("CollectionScope = %q, want %q", cfg.Firestore.CollectionScope, defaultCollectionScope)
	}
	if cfg.QRCode.ErrorCorrectionLevel != defaultQRCodeLevel {
		t.Fatalf("ErrorCorrectionLevel = %q, want %q", cfg.QRCode.ErrorCorrectionLevel, defaultQRCodeLevel)
	}
}
