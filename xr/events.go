// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xr

// Event is the payload of a polled [EventDataBuffer]. Use a type
// switch on the concrete event types below to read it.
type Event interface {
	Chained
}

// EventDataBuffer receives one event from PollEvent.
type EventDataBuffer struct {
	Next  []Chained
	Event Event
}

func (*EventDataBuffer) StructureType() StructureType { return TypeEventDataBuffer }

// EventDataEventsLost reports that the event queue overflowed.
type EventDataEventsLost struct {
	LostEventCount uint32
}

func (*EventDataEventsLost) StructureType() StructureType { return TypeEventDataEventsLost }

// EventDataInstanceLossPending warns that the instance will be
// lost at LossTime.
type EventDataInstanceLossPending struct {
	LossTime Time
}

func (*EventDataInstanceLossPending) StructureType() StructureType {
	return TypeEventDataInstanceLossPending
}

// EventDataSessionStateChanged reports a session lifecycle transition.
type EventDataSessionStateChanged struct {
	Session Session
	State   SessionState
	Time    Time
}

func (*EventDataSessionStateChanged) StructureType() StructureType {
	return TypeEventDataSessionStateChanged
}

// EventDataReferenceSpaceChangePending is sent when the origin of
// a reference space is about to move, for example on a recenter.
type EventDataReferenceSpaceChangePending struct {
	Session             Session
	ReferenceSpaceType  ReferenceSpaceType
	ChangeTime          Time
	PoseValid           bool
	PoseInPreviousSpace Posef
}

func (*EventDataReferenceSpaceChangePending) StructureType() StructureType {
	return TypeEventDataReferenceSpaceChangePending
}

// EventDataInteractionProfileChanged is sent when the active
// interaction profile of any top level path changes.
type EventDataInteractionProfileChanged struct {
	Session Session
}

func (*EventDataInteractionProfileChanged) StructureType() StructureType {
	return TypeEventDataInteractionProfileChanged
}

type EventDataVisibilityMaskChangedKHR struct {
	Session               Session
	ViewConfigurationType ViewConfigurationType
	ViewIndex             uint32
}

func (*EventDataVisibilityMaskChangedKHR) StructureType() StructureType {
	return TypeEventDataVisibilityMaskChangedKHR
}

type EventDataViveTrackerConnectedHTCX struct {
	Paths *ViveTrackerPathsHTCX
}

func (*EventDataViveTrackerConnectedHTCX) StructureType() StructureType {
	return TypeEventDataViveTrackerConnectedHTCX
}
