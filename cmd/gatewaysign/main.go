package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/vncsmyrnk/pollgate/internal/adapters/crypto/secp256k1"
	"github.com/vncsmyrnk/pollgate/internal/core/domain"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("gatewaysign", "Signs ledger instructions the way the gateway does.")

	keygen = app.Command("keygen", "Generate a gateway key pair.")

	pubkey    = app.Command("pubkey", "Print the compressed public key for a private key.")
	pubkeyKey = pubkey.Flag("key", "Private key (hex).").Envar("GATEWAY_PRIVATE_KEY").Required().String()

	sign       = app.Command("sign", "Sign an instruction and print the envelope.")
	signKey    = sign.Flag("key", "Private key (hex).").Envar("GATEWAY_PRIVATE_KEY").Required().String()
	signPost   = sign.Flag("post", "Ledger base URL; the envelope is posted to <url>/api/execute.").String()
	signHandle = sign.Arg("handle", "Instruction handle (create_proposal or create_vote).").Required().String()
	signInput  = sign.Arg("input", "Instruction payload JSON.").Required().String()
)

type envelope struct {
	Handle      string `json:"handle"`
	InputValues string `json:"input_values"`
	InputHash   string `json:"input_hash"`
	Signature   string `json:"signature"`
}

func main() {
	var err error
	switch kingpin.MustParse(app.Parse(os.Args[1:])) {
	case keygen.FullCommand():
		err = runKeygen(os.Stdout)
	case pubkey.FullCommand():
		err = runPubkey(os.Stdout, *pubkeyKey)
	case sign.FullCommand():
		err = runSign(os.Stdout, *signKey, *signHandle, *signInput, *signPost)
	}
	app.FatalIfError(err, "")
}

func runKeygen(w io.Writer) error {
	signer, err := secp256k1.GenerateSigner()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "GATEWAY_PRIVATE_KEY=%s\n", signer.PrivateKeyHex())
	fmt.Fprintf(w, "GATEWAY_PUBLIC_KEY=%s\n", hex.EncodeToString(signer.PublicKey()))
	return nil
}

func runPubkey(w io.Writer, key string) error {
	signer, err := secp256k1.SignerFromHex(key)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, hex.EncodeToString(signer.PublicKey()))
	return nil
}

func runSign(w io.Writer, key, handle, input, postURL string) error {
	signer, err := secp256k1.SignerFromHex(key)
	if err != nil {
		return err
	}

	// decode first so a typo never gets signed
	instruction, err := domain.DecodeInstruction(handle, input)
	if err != nil {
		return err
	}
	signed, err := signer.SignInstruction(instruction)
	if err != nil {
		return err
	}

	body, err := json.Marshal(envelope{
		Handle:      signed.Handle,
		InputValues: signed.InputValues,
		InputHash:   "0x" + hex.EncodeToString(signed.InputHash),
		Signature:   "0x" + hex.EncodeToString(signed.Signature),
	})
	if err != nil {
		return err
	}

	if postURL == "" {
		_, err = fmt.Fprintln(w, string(body))
		return err
	}
	return post(w, postURL+"/api/execute", body)
}

func post(w io.Writer, url string, body []byte) error {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ledger returned %s: %s", resp.Status, bytes.TrimSpace(out))
	}
	_, err = w.Write(out)
	return err
}
