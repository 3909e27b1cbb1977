// Package client talks to the remote audit service.
//
// A Client sends one AuditRequest as a JSON POST and decodes the reply into
// a model.AuditResult. Failures are classified as *TransportError (the
// request never produced a response), *RemoteRequestError (the service
// answered with a non-2xx status) or *model.MalformedResponseError (the
// body did not satisfy the audit result contract).
//
// Outbound traffic may be routed through a SOCKS5 proxy and carry extra
// static headers configured by the user.
package client
