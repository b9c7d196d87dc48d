// Package pinterest fetches pin pages and media files over HTTP.
//
// The Client sends every request with a desktop browser header set, because
// Pinterest answers Go's default agent with an error page. Only HTTP 200 is
// treated as success; anything else is an *errors.Error of type bad_status,
// and transport failures are reported as type network. Nothing is retried.
//
//	client := pinterest.NewClient(0, logger.GetLogger())
//	body, err := client.FetchPage(ctx, "https://www.pinterest.com/pin/123/")
//
// Media downloads use Open, which hands back the response body so the
// caller can stream it to disk instead of buffering the whole file.
package pinterest
