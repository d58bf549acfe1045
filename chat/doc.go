// Package chat owns the IRC connection. It connects as the configured bot,
// identifies to the network's registration service when a password is set,
// joins the single configured channel, and hands every channel message to the
// registered handler in receipt order.
//
// The underlying client funnels all outbound writes through one connection
// writer, so replies sent concurrently by enrichment goroutines never
// interleave mid-line.
//
// Credentials: IRC_OAUTH_TOKEN authenticates the connection itself; without it
// the bot connects anonymously (read-only on networks that allow it).
// NICKSERV_PASSWORD additionally sends one IDENTIFY line after the welcome
// event, before joining the channel.
package chat
