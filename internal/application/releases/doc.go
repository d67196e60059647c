// Package releases is the application layer over the release registry.
//
// Service owns one release.Registry and adds the concerns the registry stays
// free of:
//   - seeding the registry from config.ReleaseConfig entries at start-up
//   - publishing a pubsub event after every successful mutation
//   - logging mutations and rejected input under the registry category
//
// The registry's rules are applied unchanged: Service never validates on its
// own and returns registry errors as-is, so callers can match them with
// errors.Is against the release sentinels.
//
// # Events
//
// Subscribers of Broker receive pubsub.Event[release.Release] values:
//
//	created  payload is the new release
//	updated  payload is the release after the update
//	deleted  payload is the release as it was before removal
//
// Seeding does not publish.
package releases
