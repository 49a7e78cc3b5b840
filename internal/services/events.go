package services

// Wire vocabulary of the event channel. Control events arrive from clients;
// actor events and data frames are emitted by the server.
const (
	EventInit       = "init"
	EventDataUpdate = "data:update"
	EventError      = "error"

	EventControlCreateChat         = "control:create_chat"
	EventControlSelectChat         = "control:select_chat"
	EventControlUpdateChat         = "control:update_chat"
	EventControlDeleteChat         = "control:delete_chat"
	EventControlSendMessage        = "control:send_message"
	EventControlTypingStart        = "control:typing_start"
	EventControlClear              = "control:clear"
	EventControlReset              = "control:reset"
	EventControlSavePreset         = "control:save_preset"
	EventControlUpdatePreset       = "control:update_preset"
	EventControlDeletePreset       = "control:delete_preset"
	EventControlUpdateMatchMessage = "control:update_match_message"
	EventControlSetStatus          = "control:set_status"
	EventControlAddStatusPreset    = "control:add_status_preset"
	EventControlDeleteStatusPreset = "control:delete_status_preset"
	EventControlSaveScenario       = "control:save_scenario"
	EventControlLoadScenario       = "control:load_scenario"
	EventControlRenameScenario     = "control:rename_scenario"
	EventControlDeleteScenario     = "control:delete_scenario"
	EventControlClearAvatar        = "control:clear_avatar"
	EventControlSwitchApp          = "control:switch_app"

	EventControlCreateDatingProfile    = "control:create_dating_profile"
	EventControlUpdateDatingProfile    = "control:update_dating_profile"
	EventControlDeleteDatingProfile    = "control:delete_dating_profile"
	EventControlReorderDatingProfiles  = "control:reorder_dating_profiles"
	EventControlSetActiveDatingProfile = "control:set_active_dating_profile"
	EventControlSaveDatingScenario     = "control:save_dating_scenario"
	EventControlLoadDatingScenario     = "control:load_dating_scenario"
	EventControlDeleteDatingScenario   = "control:delete_dating_scenario"
	EventControlUpdateAppName          = "control:update_app_name"
	EventControlUpdateDatingTheme      = "control:update_dating_theme"
	EventControlUpdateMatchSettings    = "control:update_match_settings"

	EventControlUpdateMessengerTheme     = "control:update_messenger_theme"
	EventControlUpdateDissolveSettings   = "control:update_dissolve_settings"
	EventControlUpdateVfxSettings        = "control:update_vfx_settings"
	EventControlUpdateLockScreenSettings = "control:update_lockscreen_settings"
	EventControlUpdateInstagram          = "control:update_instagram"

	EventControlSaveGlobalScene    = "control:save_global_scene"
	EventControlLoadGlobalScene    = "control:load_global_scene"
	EventControlRenameGlobalScene  = "control:rename_global_scene"
	EventControlDeleteGlobalScene  = "control:delete_global_scene"
	EventControlRestoreGlobalScene = "control:restore_global_scene"

	EventActorSendMessage = "actor:send_message"
	EventActorDatingSwipe = "actor:dating_swipe"

	EventActorSwitchChat     = "actor:switch_chat"
	EventActorTypingStart    = "actor:typing_start"
	EventActorReceiveMessage = "actor:receive_message"
	EventActorClear          = "actor:clear"
	EventActorReset          = "actor:reset"
)
