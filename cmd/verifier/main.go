// Command verifier listens for provers and runs one identification session
// per connection. With --attest it additionally signs a transcript of every
// completed session with a freshly generated ECDSA attestation key.
package main

import (
	"crypto/ecdsa"
	"crypto/tls"
	"encoding/base64"
	"net"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/privacybydesign/schnorrid"
	"github.com/privacybydesign/schnorrid/signed"
	"github.com/privacybydesign/schnorrid/transcript"
	"github.com/privacybydesign/schnorrid/transport"
)

func main() {
	app := cli.NewApp()
	app.Name = "verifier"
	app.Usage = "verify provers' knowledge of a discrete-log secret"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "addr",
			Value: "127.0.0.1:4000",
			Usage: "listen address",
		},
		cli.StringFlag{
			Name:  "seed",
			Value: "demo-prover-secret",
			Usage: "seed the expected public key is derived from (demo only)",
		},
		cli.BoolFlag{
			Name:  "tls",
			Usage: "serve TLS with an ephemeral self-signed certificate",
		},
		cli.BoolFlag{
			Name:  "attest",
			Usage: "sign a transcript of every completed session",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "log every protocol message",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		schnorrid.Logger.Fatal(err)
	}
}

func run(ctx *cli.Context) error {
	if ctx.Bool("verbose") {
		schnorrid.Logger.SetLevel(logrus.DebugLevel)
	}

	// The demo re-derives the prover's secret here so the verifier can
	// compute the expected public key on its own. A genuine deployment
	// would receive only the public key.
	keys := schnorrid.NewKeyPairFromSeed([]byte(ctx.String("seed")))

	var tlsConf *tls.Config
	if ctx.Bool("tls") {
		host, _, err := net.SplitHostPort(ctx.String("addr"))
		if err != nil {
			return err
		}
		tlsConf, _, err = transport.SelfSignedConfig(host)
		if err != nil {
			return err
		}
	}

	var handler schnorrid.SessionHandler
	if ctx.Bool("attest") {
		attestKey, err := signed.GenerateKey()
		if err != nil {
			return err
		}
		pemPk, err := signed.MarshalPemPublicKey(&attestKey.PublicKey)
		if err != nil {
			return err
		}
		schnorrid.Logger.Infof("verifier: attestation public key\n%s", pemPk)
		handler = attestation(attestKey)
	}

	l, err := transport.Listen(ctx.String("addr"), tlsConf)
	if err != nil {
		return err
	}
	return schnorrid.Serve(l, keys.Public, handler)
}

func attestation(sk *ecdsa.PrivateKey) schnorrid.SessionHandler {
	return func(record *transcript.Record, result schnorrid.Result) {
		msg, err := record.Sign(sk)
		if err != nil {
			schnorrid.Logger.WithError(err).Warn("verifier: signing transcript failed")
			return
		}
		schnorrid.Logger.WithFields(logrus.Fields{
			"result":      result.String(),
			"attestation": base64.StdEncoding.EncodeToString(msg),
		}).Info("verifier: session attested")
	}
}
