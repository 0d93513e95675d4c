package translation

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"

	"horse.fit/translate/internal/messages"
)

// MessageResolver returns the localized display string for a message key.
type MessageResolver interface {
	Resolve(key string, args ...any) string
}

// Classifier maps faults onto user-facing error descriptions.
//
// Precedence, first match wins:
//
//	UnsupportedLanguageError         error.unsupportedLanguage (language name)
//	connection refused, DNS failure  error.network.connection
//	other socket or TLS failure      error.network (includes scheme
//	                                 mismatch and a server hang-up)
//	timeout                          error.network.timeout
//	ContentLengthLimitError          error.text.too.long
//	HTTPStatusError                  per status code, else the reason phrase
//	I/O failure                      error.io.exception (error message)
//
// Anything else has no description. The network predicates exclude timeouts
// because Go reports dial and read timeouts through *net.OpError.
type Classifier struct {
	messages MessageResolver
}

func NewClassifier(resolver MessageResolver) *Classifier {
	return &Classifier{messages: resolver}
}

// Classify returns nil when err is not a known fault.
func (c *Classifier) Classify(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	msg, ok := c.describe(err)
	if !ok {
		return nil
	}
	return &ErrorInfo{Message: msg}
}

func (c *Classifier) describe(err error) (string, bool) {
	var (
		unsupported *UnsupportedLanguageError
		tooLong     *ContentLengthLimitError
		status      *HTTPStatusError
	)

	switch {
	case errors.As(err, &unsupported):
		return c.messages.Resolve(messages.KeyUnsupportedLanguage, unsupported.Lang.Name), true
	case isConnectionError(err):
		return c.messages.Resolve(messages.KeyNetworkConnection), true
	case isSocketError(err):
		return c.messages.Resolve(messages.KeyNetwork), true
	case isTimeout(err):
		return c.messages.Resolve(messages.KeyNetworkTimeout), true
	case errors.As(err, &tooLong):
		return c.messages.Resolve(messages.KeyTextTooLong), true
	case errors.As(err, &status):
		return c.describeStatus(status.StatusCode), true
	}

	if msg, ok := ioErrorMessage(err); ok {
		return c.messages.Resolve(messages.KeyIOException, msg), true
	}
	return "", false
}

func (c *Classifier) describeStatus(code int) string {
	switch code {
	case http.StatusTooManyRequests:
		return c.messages.Resolve(messages.KeyTooManyRequests)
	case http.StatusForbidden:
		return c.messages.Resolve(messages.KeyInvalidAccount)
	case http.StatusBadRequest:
		return c.messages.Resolve(messages.KeyBadRequest)
	case http.StatusRequestEntityTooLarge:
		return c.messages.Resolve(messages.KeyTextTooLong)
	case http.StatusServiceUnavailable:
		return c.messages.Resolve(messages.KeyServiceUnavailable)
	case http.StatusInternalServerError:
		return c.messages.Resolve(messages.KeySystemError)
	default:
		// Protocol reason phrase, not localized.
		return ReasonPhrase(code)
	}
}

// reasonPhrases lists the status codes that have a registered reason phrase.
// Codes missing here, such as 418 or 451, are described by their class.
var reasonPhrases = map[int]string{
	100: "Continue",
	101: "Switching Protocols",
	102: "Processing",
	103: "Early Hints",
	200: "OK",
	201: "Created",
	202: "Accepted",
	203: "Non-Authoritative Information",
	204: "No Content",
	205: "Reset Content",
	206: "Partial Content",
	207: "Multi-Status",
	300: "Multiple Choices",
	301: "Moved Permanently",
	302: "Found",
	303: "See Other",
	304: "Not Modified",
	305: "Use Proxy",
	307: "Temporary Redirect",
	308: "Permanent Redirect",
	400: "Bad Request",
	401: "Unauthorized",
	402: "Payment Required",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	406: "Not Acceptable",
	407: "Proxy Authentication Required",
	408: "Request Timeout",
	409: "Conflict",
	410: "Gone",
	411: "Length Required",
	412: "Precondition Failed",
	413: "Request Entity Too Large",
	414: "Request-URI Too Long",
	415: "Unsupported Media Type",
	416: "Requested Range Not Satisfiable",
	417: "Expectation Failed",
	421: "Misdirected Request",
	422: "Unprocessable Entity",
	423: "Locked",
	424: "Failed Dependency",
	425: "Unordered Collection",
	426: "Upgrade Required",
	428: "Precondition Required",
	429: "Too Many Requests",
	431: "Request Header Fields Too Large",
	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
	505: "HTTP Version Not Supported",
	506: "Variant Also Negotiates",
	507: "Insufficient Storage",
	510: "Not Extended",
	511: "Network Authentication Required",
}

// ReasonPhrase returns the registered reason phrase for code. Other codes get
// their status class, for example "Client Error (499)".
func ReasonPhrase(code int) string {
	if text, ok := reasonPhrases[code]; ok {
		return text
	}
	var class string
	switch {
	case code >= 100 && code < 200:
		class = "Informational"
	case code >= 200 && code < 300:
		class = "Success"
	case code >= 300 && code < 400:
		class = "Redirection"
	case code >= 400 && code < 500:
		class = "Client Error"
	case code >= 500 && code < 600:
		class = "Server Error"
	default:
		class = "Unknown Status"
	}
	return fmt.Sprintf("%s (%d)", class, code)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isConnectionError(err error) bool {
	if isTimeout(err) {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isSocketError(err error) bool {
	if isTimeout(err) {
		return false
	}
	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, http.ErrSchemeMismatch) ||
		isPeerHangup(err) {
		return true
	}

	var (
		opErr       *net.OpError
		recordErr   tls.RecordHeaderError
		alertErr    tls.AlertError
		verifyErr   *tls.CertificateVerificationError
		authorityEr x509.UnknownAuthorityError
		hostnameErr x509.HostnameError
		invalidErr  x509.CertificateInvalidError
	)
	return errors.As(err, &opErr) ||
		errors.As(err, &recordErr) ||
		errors.As(err, &alertErr) ||
		errors.As(err, &verifyErr) ||
		errors.As(err, &authorityEr) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr)
}

// isPeerHangup reports a connection the server closed before a response
// arrived. The HTTP client reports it as EOF inside a *url.Error.
func isPeerHangup(err error) bool {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return false
	}
	return errors.Is(urlErr.Err, io.EOF) || errors.Is(urlErr.Err, io.ErrUnexpectedEOF)
}

var ioSentinels = []error{
	io.EOF,
	io.ErrUnexpectedEOF,
	io.ErrClosedPipe,
	io.ErrShortWrite,
	io.ErrShortBuffer,
}

// ioErrorMessage reports whether err is an I/O failure and returns the message
// of the matched error.
func ioErrorMessage(err error) (string, bool) {
	var (
		ioErr   *IOError
		pathErr *fs.PathError
		sysErr  *os.SyscallError
		urlErr  *url.Error
	)
	switch {
	case errors.As(err, &ioErr):
		return ioErr.Error(), true
	case errors.As(err, &pathErr):
		return pathErr.Error(), true
	case errors.As(err, &sysErr):
		return sysErr.Error(), true
	case errors.As(err, &urlErr):
		return urlErr.Error(), true
	}
	for _, sentinel := range ioSentinels {
		if errors.Is(err, sentinel) {
			return sentinel.Error(), true
		}
	}
	return "", false
}
