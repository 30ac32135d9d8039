package certs

// TrustCert installs the certificate at certPath into the host's system
// trust store, so host browsers accept TLS connections mitmproxy intercepts.
// Implementation is platform specific and may prompt for sudo.
func TrustCert(certPath string) error {
	return trustCertImpl(certPath)
}
