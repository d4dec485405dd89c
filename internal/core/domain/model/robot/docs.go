// Package robot provides the Robot aggregate: a delivery robot that is either idle
// or carrying exactly one order.
//
// Availability is derived from the current order, so the flag and the binding
// cannot drift apart. Pool-wide concerns such as picking an idle robot under
// concurrency live in the RobotRepository implementations, which report
// ErrNoRobotAvailable when every robot is busy.
package robot
