package services

import "github.com/iffypixy/metaorta/internal/models"

// Notification event names delivered over the real-time channel.
const (
	EventProjectRequestSent    = "PROJECT_REQUEST_SENT"
	EventRequestAccepted       = "REQUEST_ACCEPTED"
	EventRequestDeclined       = "REQUEST_DECLINED"
	EventKickedFromProject     = "KICKED_FROM_PROJECT"
	EventTaskAssigned          = "TASK_ASSIGNED"
	EventTaskAccepted          = "TASK_ACCEPTED"
	EventReviewGiven           = "REVIEW_GIVEN"
	EventFriendRequestSent     = "FRIEND_REQUEST_SENT"
	EventFriendRequestAccepted = "FRIEND_REQUEST_ACCEPTED"
)

// Event is the envelope pushed to a user's active connections. Payload is
// one of the fixed payload structs below; each event kind has exactly one
// shape.
type Event struct {
	Name    string      `json:"event"`
	Payload interface{} `json:"payload"`
}

type RequestSentPayload struct {
	Project *models.Project        `json:"project"`
	Request *models.ProjectRequest `json:"request"`
}

type RequestResolvedPayload struct {
	Project *models.Project       `json:"project"`
	Member  *models.ProjectMember `json:"member"`
}

type KickedPayload struct {
	Project *models.Project `json:"project"`
	Role    string          `json:"role"`
}

type TaskPayload struct {
	Project *models.Project     `json:"project"`
	Task    *models.ProjectTask `json:"task"`
}

type ReviewPayload struct {
	Project *models.Project `json:"project"`
	Review  *models.Review  `json:"review"`
}

type FriendRequestPayload struct {
	Request *models.FriendRequest `json:"request"`
}

type FriendshipPayload struct {
	Friendship *models.Friendship `json:"friendship"`
}

func NewRequestSentEvent(project *models.Project, request *models.ProjectRequest) Event {
	return Event{Name: EventProjectRequestSent, Payload: RequestSentPayload{Project: project, Request: request}}
}

func NewRequestAcceptedEvent(project *models.Project, member *models.ProjectMember) Event {
	return Event{Name: EventRequestAccepted, Payload: RequestResolvedPayload{Project: project, Member: member}}
}

func NewRequestDeclinedEvent(project *models.Project, member *models.ProjectMember) Event {
	return Event{Name: EventRequestDeclined, Payload: RequestResolvedPayload{Project: project, Member: member}}
}

func NewKickedEvent(project *models.Project, role string) Event {
	return Event{Name: EventKickedFromProject, Payload: KickedPayload{Project: project, Role: role}}
}

func NewTaskAssignedEvent(project *models.Project, task *models.ProjectTask) Event {
	return Event{Name: EventTaskAssigned, Payload: TaskPayload{Project: project, Task: task}}
}

func NewTaskAcceptedEvent(project *models.Project, task *models.ProjectTask) Event {
	return Event{Name: EventTaskAccepted, Payload: TaskPayload{Project: project, Task: task}}
}

func NewReviewGivenEvent(project *models.Project, review *models.Review) Event {
	return Event{Name: EventReviewGiven, Payload: ReviewPayload{Project: project, Review: review}}
}

func NewFriendRequestSentEvent(request *models.FriendRequest) Event {
	return Event{Name: EventFriendRequestSent, Payload: FriendRequestPayload{Request: request}}
}

func NewFriendRequestAcceptedEvent(friendship *models.Friendship) Event {
	return Event{Name: EventFriendRequestAccepted, Payload: FriendshipPayload{Friendship: friendship}}
}
