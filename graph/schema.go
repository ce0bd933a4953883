// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package graph

// schemaString is the GraphQL schema served at /graphql.
const schemaString = `
scalar Time

enum ProtectionMode {
  NONE
  COOKIE
  IP_ADDRESS
  LOGIN
}

enum CastOutcome {
  SUCCESS
  POLL_CLOSED
  SELECTION_LIMIT_EXCEEDED
  ALREADY_VOTED
  LOGIN_REQUIRED
}

type Poll {
  id: ID!
  question: String!
  choices: [Choice!]!
  createdAt: Time!
  votingStart: Time!
  votingEnd: Time
  resultsAvailableAt: Time!
  protectionMode: ProtectionMode!
  selectionLimit: Int!
  votingOpen: Boolean!
  resultsAvailable: Boolean!

  # Null until results become available.
  voteCount: Int
}

type Choice {
  id: ID!
  text: String!

  # Null / empty until results become available.
  voteCount: Int
  votes: [Vote!]
}

type Vote {
  id: ID!
  castAt: Time!
}

type User {
  id: ID!
  username: String!
  joinedAt: Time!
  createdPolls: [ID!]!
}

type CastVotePayload {
  outcome: CastOutcome!
  votes: [Vote!]
}

type AuthPayload {
  user: User!
  token: String!
}

input PollInput {
  question: String!
  choices: [String!]!

  # Offsets in seconds from the moment the request is processed.
  votingStartIn: Int
  votingEndIn: Int
  resultsAvailableIn: Int

  protectionMode: ProtectionMode!
  selectionLimit: Int
}

type Query {
  polls: [Poll!]!
  poll(id: ID!): Poll
  me: User
}

type Mutation {
  createPoll(input: PollInput!): Poll!
  castVote(pollId: ID!, choiceIds: [ID!]!): CastVotePayload!
  register(username: String!, password: String!): AuthPayload!
  login(username: String!, password: String!): AuthPayload!
}

schema {
  query: Query
  mutation: Mutation
}
`
