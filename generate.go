package rhfw

//go:generate go run ./cmd/rhfwgen generate --registry enums.yaml --out zz_generated_enums.go --package rhfw
