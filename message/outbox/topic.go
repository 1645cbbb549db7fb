package outbox

// Topic is the single Postgres-backed stream every domain event goes through.
const Topic = "events"
