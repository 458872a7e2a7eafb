// Package client is a single-request HTTP/1.1 client over the deadline
// bounded transports in package transport.
//
// A Client owns one connection and carries one request/response cycle:
//
//	c := client.New("example.com/index.html", false, 5*time.Second)
//	if err := c.Connect(); err != nil {
//		return err
//	}
//	defer c.Close()
//
//	code, err := c.StatusCode() // sends the request head, reads the response head
//	body, err := c.Body()
//
// The request head is sent lazily before the first body write or the first
// response accessor. The response head is read exactly once; every accessor
// returns the memoized result, including a memoized error.
//
// Connection pooling, pipelining and HTTP/2 are not supported.
package client
