// Package camara provides a client for the Brazilian Chamber of Deputies
// Open Data API (Dados Abertos da Câmara dos Deputados, v2).
//
// Every endpoint of the API answers a GET with the same envelope:
//
//	{"dados": <object or list>, "links": [{"rel": "next", "href": "..."}]}
//
// The client unwraps "dados", follows "next" links for list endpoints and
// retries transient failures.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: the request executor with connection pooling and retry logic
//   - Config: base URL, timeouts, retry and paging limits
//   - Endpoints: thin typed methods for deputies, bills, votes, parties, bodies, events, fronts and reference tables
//   - Types: domain models for the common entities, Record for everything else
//   - Errors: structured error types for transport, status and decoding failures
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	cfg := camara.DefaultConfig()
//	cfg.MaxRetries = 5
//
//	err := camara.With(cfg, logger, func(c *camara.Client) error {
//		deputados, err := c.Deputados(ctx, &camara.DeputadosOptions{SiglaUF: []string{"SP"}})
//		if err != nil {
//			return err
//		}
//		fmt.Println(len(deputados))
//		return nil
//	})
//
// With releases the connection pool when the function returns or panics. A
// client built with NewClient must be closed with Close.
//
// # Retries
//
// Connection failures, timeouts and 5xx responses are retried up to
// Config.MaxRetries times, waiting BackoffBase·2^attempt between attempts
// (capped at BackoffMax, or the server's Retry-After). A 4xx is returned on
// the first attempt.
//
// # Error Handling
//
// The package defines several error types:
//
//   - ConnectionError: the server could not be reached
//   - TimeoutError: an attempt exceeded Config.Timeout
//   - HTTPError: non-2xx status, with the (truncated) body
//   - DecodeError: the body is not a valid envelope
//   - ErrClientClosed: the client was used after Close
//
// HTTP errors include helper methods for classification:
//
//	var httpErr *camara.HTTPError
//	if errors.As(err, &httpErr) && httpErr.IsNotFound() {
//		// Handle missing record
//	}
package camara
