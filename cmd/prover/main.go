// Command prover connects to a verifier and proves knowledge of the
// discrete-log secret derived from its seed, over the three-message
// identification protocol.
package main

import (
	"crypto/tls"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/privacybydesign/schnorrid"
	"github.com/privacybydesign/schnorrid/internal/common"
	"github.com/privacybydesign/schnorrid/transport"
)

func main() {
	app := cli.NewApp()
	app.Name = "prover"
	app.Usage = "prove knowledge of a discrete-log secret to a verifier"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "addr",
			Value: "127.0.0.1:4000",
			Usage: "verifier address",
		},
		cli.StringFlag{
			Name:  "seed",
			Value: "demo-prover-secret",
			Usage: "secret derivation seed (demo only)",
		},
		cli.BoolFlag{
			Name:  "tls",
			Usage: "wrap the connection in TLS",
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

	keys := schnorrid.NewKeyPairFromSeed([]byte(ctx.String("seed")))
	schnorrid.Logger.WithField("key", schnorrid.Fingerprint(keys.Public)).
		Info("prover: derived demo keypair")

	var tlsConf *tls.Config
	if ctx.Bool("tls") {
		// the demo verifier presents an ephemeral self-signed
		// certificate, so there is nothing to pin against
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}

	stream, err := transport.Dial(ctx.String("addr"), tlsConf)
	if err != nil {
		return err
	}
	defer common.Close(stream)

	if err := schnorrid.NewProver(keys).Run(stream); err != nil {
		return err
	}
	schnorrid.Logger.Info("prover: identification exchange complete")
	return nil
}
