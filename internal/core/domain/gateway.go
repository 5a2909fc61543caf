package domain

// GatewayConfig identifies the single relay allowed to submit mutating
// instructions. It is written once by Initialize and never reassigned.
type GatewayConfig struct {
	Address   string `json:"address" msgpack:"address"`
	Hash      string `json:"hash" msgpack:"hash"`
	PublicKey []byte `json:"public_key" msgpack:"public_key"`
}
