// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Key components:
//
// 1. Service Interfaces:
//   - UserService registers users and looks them up with their tasks attached
//   - TaskService creates tasks and reads, updates or deletes them scoped by owner
//
// 2. Dependency Management:
//   - Services receive the store ports through constructor injection
//   - Services hold no mutable state and are safe for concurrent use
//
// 3. Error Handling:
//   - Expected business outcomes are returned as *domain.Error values
//     (USER_NOT_FOUND, USER_EXISTS, TASK_NOT_FOUND)
//   - Unexpected store failures are wrapped in UserServiceError or
//     TaskServiceError and never folded into a not-found outcome
//
// The service layer depends on domain entities and repository interfaces (from store),
// but never on specific infrastructure implementations.
package service
