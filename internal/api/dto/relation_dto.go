package dto

// FollowRequest is used by follow, unfollow and follow-check.
type FollowRequest struct {
	FollowerUsername string `json:"followerUsername" form:"followerUsername" binding:"required"`
	TargetUsername   string `json:"targetUsername" form:"targetUsername" binding:"required"`
}

type FollowStatus struct {
	IsFollowing bool `json:"isFollowing"`
}
