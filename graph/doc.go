// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package graph is the GraphQL transport over the poll engine.

# Surface

Queries:

	polls: [Poll!]!
	poll(id: ID!): Poll
	me: User

Mutations:

	createPoll(input: PollInput!): Poll!
	castVote(pollId: ID!, choiceIds: [ID!]!): CastVotePayload!
	register(username, password): AuthPayload!
	login(username, password): AuthPayload!

# Outcomes vs errors

castVote returns policy rejections inside the payload outcome enum; only
unknown poll/choice IDs and infrastructure failures become GraphQL errors.
createPoll validation failures carry the offending field name in the error
message.

# Result gating

voteCount and votes resolve to null while results are unavailable, checked
against the injected clock on every read. The data is stored regardless;
only this read boundary hides it.

# Cookie side channel

Cookie-protected casts and session-opening mutations queue Set-Cookie
headers through middleware.SetPendingCookie; the resolver never touches the
response writer.
*/
package graph
