package errors

import "errors"

// ================= 业务领域错误定义 =================
// 所有业务逻辑相关的错误统一在此定义，避免跨包重复定义
// 注意：资料（profile）缺失不是错误，仓库层返回 (nil, nil)

// ErrClubNotFound 社团不存在
var ErrClubNotFound = errors.New("club not found")

// ErrEventNotFound 活动不存在
var ErrEventNotFound = errors.New("event not found")

// ErrNotClubLead 调用者不是该社团的负责人
var ErrNotClubLead = errors.New("caller is not a lead of this club")

// ErrAlreadyMember 用户已是社团成员
var ErrAlreadyMember = errors.New("user is already a member of this club")

// ErrClubNotApproved 社团尚未审核通过，不能加入
var ErrClubNotApproved = errors.New("club is pending approval")

// ErrInvalidPatch JSON Patch 无法解析或应用
var ErrInvalidPatch = errors.New("invalid event patch")

// ErrInvalidEventStatus 活动状态不合法
var ErrInvalidEventStatus = errors.New("invalid event status")

// ErrRoomClosing 房间正在关闭，客户端应重试
var ErrRoomClosing = errors.New("feed room is closing, please retry")
