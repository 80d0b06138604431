package transport

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"net"
	"time"

	"github.com/go-errors/errors"
)

// SelfSignedConfig issues an ephemeral ECDSA certificate for host and
// returns matching server and client TLS configurations. The client config
// trusts exactly this one certificate. Demo-grade: the certificate lives in
// memory, is valid for a day and is regenerated on every process start.
func SelfSignedConfig(host string) (server, client *tls.Config, err error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, errors.WrapPrefix(err, "generating certificate key", 0)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, nil, errors.WrapPrefix(err, "generating certificate serial", 0)
	}

	template := x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: host},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	if ip := net.ParseIP(host); ip != nil {
		template.IPAddresses = []net.IP{ip}
	} else {
		template.DNSNames = []string{host}
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return nil, nil, errors.WrapPrefix(err, "issuing certificate", 0)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, nil, errors.WrapPrefix(err, "parsing issued certificate", 0)
	}

	pool := x509.NewCertPool()
	pool.AddCert(cert)

	server = &tls.Config{
		Certificates: []tls.Certificate{{
			Certificate: [][]byte{der},
			PrivateKey:  key,
		}},
	}
	client = &tls.Config{
		RootCAs:    pool,
		ServerName: host,
	}
	return server, client, nil
}
