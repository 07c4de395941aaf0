package rig

import "github.com/plus3/orbitrig/ecs"

// SubjectTrackerSystem points the camera rig at the local player. It does nothing
// unless there is exactly one of each.
type SubjectTrackerSystem struct {
	Subjects ecs.Query[trackedSubject]
	Rigs     ecs.Query[struct{ State *OrbitState }]
}

type trackedSubject struct {
	*LocalPlayer
	Transform *Transform
}

func (s *SubjectTrackerSystem) Execute(frame *ecs.UpdateFrame) {
	subject, ok := s.Subjects.Single()
	if !ok {
		return
	}
	rig, ok := s.Rigs.Single()
	if !ok {
		return
	}
	rig.State.Center = subject.Transform.Translation
}
